package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/token/types"
)

// BalanceOf returns the balance of addr. Unreadable entries read as zero and
// are reported by the supply invariant.
func (k Keeper) BalanceOf(ctx context.Context, addr sdk.AccAddress) math.Int {
	bal, err := getInt(k.getStore(ctx), types.BalanceKey(addr))
	if err != nil {
		k.Logger(ctx).Error("failed to decode balance", "address", addr.String(), "error", err)
		return math.ZeroInt()
	}
	return bal
}

// TotalSupply returns the outstanding supply of the denom.
func (k Keeper) TotalSupply(ctx context.Context) math.Int {
	supply, err := getInt(k.getStore(ctx), types.SupplyKey)
	if err != nil {
		k.Logger(ctx).Error("failed to decode supply", "error", err)
		return math.ZeroInt()
	}
	return supply
}

// Allowance returns how much spender may still move on behalf of owner.
func (k Keeper) Allowance(ctx context.Context, owner, spender sdk.AccAddress) math.Int {
	allowance, err := getInt(k.getStore(ctx), types.AllowanceKey(owner, spender))
	if err != nil {
		k.Logger(ctx).Error("failed to decode allowance", "owner", owner.String(), "spender", spender.String(), "error", err)
		return math.ZeroInt()
	}
	return allowance
}

// Approve sets the allowance of spender over owner's balance to amount.
func (k Keeper) Approve(ctx context.Context, owner, spender sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if owner.Empty() || spender.Empty() {
		return types.ErrInvalidAddress.Wrap("owner and spender must be set")
	}

	if err := setInt(k.getStore(ctx), types.AllowanceKey(owner, spender), amount); err != nil {
		return fmt.Errorf("Approve: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyDenom, k.denom),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount from sender to recipient.
func (k Keeper) Transfer(ctx context.Context, sender, recipient sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if sender.Empty() || recipient.Empty() {
		return types.ErrInvalidAddress.Wrap("sender and recipient must be set")
	}

	store := k.getStore(ctx)
	if err := k.move(store, sender, recipient, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, k.denom),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// TransferFrom moves amount from owner to recipient on behalf of spender,
// consuming spender's allowance.
func (k Keeper) TransferFrom(ctx context.Context, spender, owner, recipient sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if spender.Empty() || owner.Empty() || recipient.Empty() {
		return types.ErrInvalidAddress.Wrap("spender, owner and recipient must be set")
	}

	store := k.getStore(ctx)
	allowance, err := getInt(store, types.AllowanceKey(owner, spender))
	if err != nil {
		return fmt.Errorf("TransferFrom: read allowance: %w", err)
	}
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("%s %s: allowed %s, need %s", k.denom, spender, allowance, amount)
	}

	if err := k.move(store, owner, recipient, amount); err != nil {
		return err
	}
	if err := setInt(store, types.AllowanceKey(owner, spender), allowance.Sub(amount)); err != nil {
		return fmt.Errorf("TransferFrom: write allowance: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, k.denom),
			sdk.NewAttribute(types.AttributeKeySender, owner.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Mint creates amount new units owned by to.
func (k Keeper) Mint(ctx context.Context, to sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrInvalidAddress.Wrap("mint recipient must be set")
	}

	store := k.getStore(ctx)
	supply, err := getInt(store, types.SupplyKey)
	if err != nil {
		return fmt.Errorf("Mint: read supply: %w", err)
	}
	newSupply, err := supply.SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("supply overflow: %s + %s", supply, amount)
	}
	bal, err := getInt(store, types.BalanceKey(to))
	if err != nil {
		return fmt.Errorf("Mint: read balance: %w", err)
	}

	// balance <= supply, so the balance addition cannot overflow once supply did not
	if err := setInt(store, types.BalanceKey(to), bal.Add(amount)); err != nil {
		return fmt.Errorf("Mint: write balance: %w", err)
	}
	if err := setInt(store, types.SupplyKey, newSupply); err != nil {
		return fmt.Errorf("Mint: write supply: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyDenom, k.denom),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Burn destroys amount units owned by from.
func (k Keeper) Burn(ctx context.Context, from sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	store := k.getStore(ctx)
	bal, err := getInt(store, types.BalanceKey(from))
	if err != nil {
		return fmt.Errorf("Burn: read balance: %w", err)
	}
	if bal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s %s: have %s, need %s", k.denom, from, bal, amount)
	}
	supply, err := getInt(store, types.SupplyKey)
	if err != nil {
		return fmt.Errorf("Burn: read supply: %w", err)
	}
	if supply.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s supply %s below burn amount %s", k.denom, supply, amount)
	}

	if err := setInt(store, types.BalanceKey(from), bal.Sub(amount)); err != nil {
		return fmt.Errorf("Burn: write balance: %w", err)
	}
	if err := setInt(store, types.SupplyKey, supply.Sub(amount)); err != nil {
		return fmt.Errorf("Burn: write supply: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBurn,
			sdk.NewAttribute(types.AttributeKeyDenom, k.denom),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// move debits from and credits to without touching supply
func (k Keeper) move(store storetypes.KVStore, from, to sdk.AccAddress, amount math.Int) error {
	fromBal, err := getInt(store, types.BalanceKey(from))
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", from, err)
	}
	if fromBal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s %s: have %s, need %s", k.denom, from, fromBal, amount)
	}
	if err := setInt(store, types.BalanceKey(from), fromBal.Sub(amount)); err != nil {
		return fmt.Errorf("write balance of %s: %w", from, err)
	}

	toBal, err := getInt(store, types.BalanceKey(to))
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", to, err)
	}
	if err := setInt(store, types.BalanceKey(to), toBal.Add(amount)); err != nil {
		return fmt.Errorf("write balance of %s: %w", to, err)
	}
	return nil
}

// IterateBalances iterates over all non-zero balances of the denom
func (k Keeper) IterateBalances(ctx context.Context, cb func(addr sdk.AccAddress, balance math.Int) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var bal math.Int
		if err := bal.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateBalances: %w", err)
		}

		key := iterator.Key()[len(types.BalanceKeyPrefix):]
		addr := sdk.AccAddress(append([]byte{}, key...))
		if cb(addr, bal) {
			break
		}
	}
	return nil
}
