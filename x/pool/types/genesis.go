package types

// GenesisState defines the pool's genesis state. Reserves are not part of it;
// they are synchronized from the custodied balances on import.
type GenesisState struct {
	Pair AssetPair `json:"pair"`
}

// NewGenesisState returns the genesis of a pool trading pair.
func NewGenesisState(pair AssetPair) *GenesisState {
	return &GenesisState{Pair: pair}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Pair.Validate(); err != nil {
		return ErrInvalidGenesis.Wrap(err.Error())
	}
	return nil
}
