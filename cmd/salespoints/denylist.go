package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mchuang-tw/salespoints/internal/cli"
	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/denylist"
	"github.com/mchuang-tw/salespoints/internal/sheet"
)

func denylistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "denylist",
		Short: "Manage the excluded product ids",
		Long: `The deny-list holds product ids that every processing run excludes
(rejection reason 排除品項編號). It persists across runs; a built-in default
set applies until you save your own.`,
	}

	cmd.AddCommand(denylistShowCmd())
	cmd.AddCommand(denylistSetCmd())
	cmd.AddCommand(denylistImportCmd())
	cmd.AddCommand(denylistExportCmd())
	cmd.AddCommand(denylistResetCmd())

	return cmd
}

func denylistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current deny-list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ids := store.LoadDenyList(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(fmt.Sprintf("排除品項編號（%d 筆）", len(ids))))
			fmt.Fprintln(cmd.OutOrStdout(), denylist.Join(ids))
			return nil
		},
	}
}

func denylistSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <ids...>",
		Short: "Replace the deny-list with the given ids",
		Long: `Set replaces the persisted deny-list. Ids may be separated by spaces,
commas or newlines. Duplicates are reported and only removed after
confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := denylist.ParseFreeText(strings.Join(args, ","))
			return saveWithDedupPrompt(cmd, ids)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "remove duplicates without asking")
	return cmd
}

func denylistImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the deny-list from a spreadsheet or text file",
		Long: `Import reads product ids from a file. Spreadsheets are flattened: every
cell of the first sheet counts, whatever its row or column. Text files are
split on commas and newlines. A failed import leaves the persisted list
untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := sheet.ReadDenyIDs(args[0])
			if err != nil {
				return common.NewUserError("import failed, the current deny-list is unchanged", err)
			}
			if len(ids) == 0 {
				return common.NewUserError("no usable ids found in the file, the current deny-list is unchanged", common.ErrImportFailed)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("read %d ids from %s", len(ids), args[0])))
			return saveWithDedupPrompt(cmd, ids)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "remove duplicates without asking")
	return cmd
}

func denylistExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Back up the deny-list to a single-column workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ids := store.LoadDenyList(ctx)
			if err := sheet.WriteDenyIDs(ids, args[0]); err != nil {
				return common.NewUserError("failed to export the deny-list", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("exported %d ids to %s", len(ids), args[0])))
			return nil
		},
	}
}

func denylistResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in default deny-list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := confirm(cmd, "Restore the built-in defaults? Current entries will be lost. [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("reset canceled"))
					return nil
				}
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ResetDenyList(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("deny-list reset to %d default ids", len(denylist.Default()))))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "reset without asking")
	return cmd
}

// saveWithDedupPrompt runs the duplicate-confirm flow before persisting:
// duplicates are surfaced and only removed when the operator agrees, so the
// store never silently drops entries.
func saveWithDedupPrompt(cmd *cobra.Command, ids []string) error {
	out := cmd.OutOrStdout()
	yes, _ := cmd.Flags().GetBool("yes")

	if dups := denylist.Duplicates(ids); len(dups) > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("duplicate ids found: %s", summarizeDups(dups))))
		if !yes {
			ok, err := confirm(cmd, "Remove duplicates and save? [y/N] ")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatWarning("save canceled, fix the list and try again"))
				return nil
			}
		}
		ids = denylist.Dedupe(ids)
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveDenyList(ctx, ids); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("saved %d ids", len(ids))))
	return nil
}

// summarizeDups keeps the warning readable when many ids repeat.
func summarizeDups(dups []string) string {
	const displayLimit = 5
	if len(dups) <= displayLimit {
		return strings.Join(dups, ", ")
	}
	return fmt.Sprintf("%s … and %d more", strings.Join(dups[:displayLimit], ", "), len(dups)-displayLimit)
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), cli.FormatPrompt(prompt))

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	line, err := reader.ReadLine(cmd.Context())
	if err != nil {
		// Cancellation and EOF both count as "no".
		return false, nil
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
