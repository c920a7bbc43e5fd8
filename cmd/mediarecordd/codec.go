package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ed25519 keypair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, priv, err := ed25519.GenerateKey(rand.Reader)
			if err != nil {
				return fmt.Errorf("generate key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "public:  %s\n", base58.Encode(pub))
			fmt.Fprintf(cmd.OutOrStdout(), "private: %s\n", base58.Encode(priv))
			return nil
		},
	}
}

func newEncodeCreateCmd() *cobra.Command {
	var args instruction.CreateRecord
	var blobHex string
	cmd := &cobra.Command{
		Use:   "encode-create",
		Short: "Print create_record instruction data as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if blobHex != "" {
				blob, err := hex.DecodeString(blobHex)
				if err != nil {
					return fmt.Errorf("blob: %w", err)
				}
				args.Blob = blob
			}
			data, err := instruction.EncodeCreateRecord(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&args.Price, "price", 0, "price in lamports")
	cmd.Flags().StringVar(&args.URL, "url", "", "media url")
	cmd.Flags().StringVar(&args.Name, "name", "", "record name")
	cmd.Flags().StringVar(&args.Description, "description", "", "record description")
	cmd.Flags().StringVar(&blobHex, "blob", "", "opaque payload as hex")
	return cmd
}

func newEncodeTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode-transfer <new-owner>",
		Short: "Print transfer_record instruction data as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := types.ParsePubkey(args[0])
			if err != nil {
				return fmt.Errorf("new owner: %w", err)
			}
			data := instruction.EncodeTransferRecord(instruction.TransferRecord{NewOwner: owner})
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
}

func newDecodeRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-record <hex>",
		Short: "Decode a hex account buffer and print its record",
		Long: `Decode the record at the start of an account buffer. Bytes after
the record are ignored, so a full fixed-capacity buffer can be passed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("account data: %w", err)
			}
			if !record.IsInitialized(buf) {
				return fmt.Errorf("account holds no record")
			}
			rec, n, err := record.DecodePrefix(buf)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "owner:       %s\n", rec.Owner)
			fmt.Fprintf(out, "price:       %d\n", rec.Price)
			fmt.Fprintf(out, "url:         %s\n", rec.URL)
			fmt.Fprintf(out, "name:        %s\n", rec.Name)
			fmt.Fprintf(out, "description: %s\n", rec.Description)
			fmt.Fprintf(out, "blob:        %s\n", hex.EncodeToString(rec.Blob))
			fmt.Fprintf(out, "size:        %d of %d bytes\n", n, len(buf))
			return nil
		},
	}
}
