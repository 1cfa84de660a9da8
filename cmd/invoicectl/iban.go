package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/spf13/cobra"
)

var errInvalidIBAN = errors.New("invalid IBAN")

func newIBANCmd() *cobra.Command {
	iban := &cobra.Command{
		Use:   "iban",
		Short: "IBAN utilities",
	}
	iban.AddCommand(&cobra.Command{
		Use:   "check <iban>",
		Short: "Validate an IBAN checksum",
		Long: `Check validates the ISO 13616 mod-97 checksum of an IBAN. Spaces and
lowercase letters are accepted. The command exits non-zero for an invalid IBAN.`,
		Example: `  invoicectl iban check ES91 2100 0418 4502 0005 1332`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			if !valueobject.IsValidIBAN(raw) {
				fmt.Fprintf(cmd.OutOrStdout(), "INVALID %s\n", raw)
				return errInvalidIBAN
			}
			fmt.Fprintf(cmd.OutOrStdout(), "VALID %s\n", valueobject.FormatIBAN(raw))
			return nil
		},
	})
	return iban
}
