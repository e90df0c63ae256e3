package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/input"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
)

const (
	flagMnemonicLength = "mnemonic-length"
	flagNoBackup       = "no-backup"
	flagRecover        = "recover"
	flagAccount        = "account"
	flagIndex          = "index"
)

// KeysCmd returns the keys command with BIP39 mnemonic support.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the local keys used as pool participants",
		Long: `Keys manages the local keystore. Key names can be used wherever a
command expects an address.`,
	}

	cmd.AddCommand(
		AddKeyCommand(),
		ListKeysCommand(),
		ShowKeysCommand(),
		DeleteKeyCommand(),
	)

	return cmd
}

// openKeyring opens the keyring of the --home directory with the selected backend.
func openKeyring(cmd *cobra.Command) (keyring.Keyring, error) {
	backend, _ := cmd.Flags().GetString(flags.FlagKeyringBackend)
	if backend == "" {
		backend = keyring.BackendOS
	}

	registry := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	return keyring.New(app.Name, backend, homeDir(cmd), cmd.InOrStdin(), cdc)
}

// AddKeyCommand creates a new key in the keyring with mnemonic generation
func AddKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new key with BIP39 mnemonic generation",
		Long: `Add a new key derived from a freshly generated BIP39 mnemonic, or from an
existing one with --recover.

WARNING: Keep your mnemonic phrase in a secure location. Anyone with access to your
mnemonic can recover your private keys and move your tokens.

Examples:
  cpammd keys add alice                           # Generate 24-word mnemonic (default)
  cpammd keys add alice --mnemonic-length 12      # Generate 12-word mnemonic
  cpammd keys add alice --recover                 # Read the mnemonic from stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("argument 'name' cannot be empty")
			}

			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}

			var mnemonic string
			if recoverExisting, _ := cmd.Flags().GetBool(flagRecover); recoverExisting {
				mnemonic, err = readMnemonic(cmd)
			} else {
				mnemonicLength, _ := cmd.Flags().GetInt(flagMnemonicLength)
				mnemonic, err = newMnemonic(mnemonicLength)
			}
			if err != nil {
				return err
			}

			account, _ := cmd.Flags().GetUint32(flagAccount)
			index, _ := cmd.Flags().GetUint32(flagIndex)
			hdPath := hd.CreateHDPath(app.CoinType, account, index)
			record, err := kr.NewAccount(name, mnemonic, keyring.DefaultBIP39Passphrase, hdPath.String(), hd.Secp256k1)
			if err != nil {
				return fmt.Errorf("failed to create key: %w", err)
			}
			if err := printRecord(cmd, record); err != nil {
				return err
			}

			recovered, _ := cmd.Flags().GetBool(flagRecover)
			noBackup, _ := cmd.Flags().GetBool(flagNoBackup)
			if !recovered && !noBackup {
				fmt.Fprintf(cmd.OutOrStdout(), "**IMPORTANT** Write this mnemonic phrase in a safe place.\n")
				fmt.Fprintf(cmd.OutOrStdout(), "It is the only way to recover your account.\n\n")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", mnemonic)
			}
			return nil
		},
	}

	cmd.Flags().Bool(flagRecover, false, "Recover key from an existing mnemonic instead of generating a new one")
	cmd.Flags().Int(flagMnemonicLength, 24, "Mnemonic length (12 or 24 words)")
	cmd.Flags().Bool(flagNoBackup, false, "Skip printing the mnemonic (WARNING: not recommended)")
	cmd.Flags().Uint32(flagAccount, 0, "Account number for HD derivation")
	cmd.Flags().Uint32(flagIndex, 0, "Address index number for HD derivation")

	return cmd
}

// newMnemonic generates a 12 or 24 word mnemonic from crypto/rand entropy.
func newMnemonic(words int) (string, error) {
	var entropySize int
	switch words {
	case 12:
		entropySize = 128 / 8
	case 24:
		entropySize = 256 / 8
	default:
		return "", fmt.Errorf("mnemonic length must be 12 or 24 words")
	}

	entropy := make([]byte, entropySize)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate secure entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

func readMnemonic(cmd *cobra.Command) (string, error) {
	buf := bufio.NewReader(cmd.InOrStdin())
	raw, err := input.GetString("Enter your bip39 mnemonic", buf)
	if err != nil {
		return "", fmt.Errorf("failed to read mnemonic: %w", err)
	}

	words := strings.Fields(raw)
	if len(words) != 12 && len(words) != 24 {
		return "", fmt.Errorf("invalid mnemonic length: expected 12 or 24 words, got %d", len(words))
	}
	mnemonic := strings.Join(words, " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", fmt.Errorf("invalid mnemonic: checksum failed")
	}
	return mnemonic, nil
}

func printRecord(cmd *cobra.Command, record *keyring.Record) error {
	addr, err := record.GetAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "- name: %s\n", record.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "  address: %s\n\n", addr.String())
	return nil
}

// ListKeysCommand lists all keys in the keyring
func ListKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}
			records, err := kr.List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No keys found.\n")
				return nil
			}
			for _, record := range records {
				if err := printRecord(cmd, record); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// ShowKeysCommand shows key information
func ShowKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the address of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}
			record, err := kr.Key(args[0])
			if err != nil {
				return err
			}
			return printRecord(cmd, record)
		},
	}
}

// DeleteKeyCommand removes a key from the keyring
func DeleteKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}
			if err := kr.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key %s deleted\n", args[0])
			return nil
		},
	}
}
