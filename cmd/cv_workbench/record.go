package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage the stored career record",
}

var recordImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import an exported record into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordImport,
}

var recordExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored record as JSON",
	RunE:  runRecordExport,
}

var recordShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the stored record",
	RunE:  runRecordShow,
}

var recordUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change to the stored record",
	RunE:  runRecordUndo,
}

var recordVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List saved versions of the record",
	RunE:  runRecordVersions,
}

var recordSaveCmd = &cobra.Command{
	Use:   "save LABEL",
	Short: "Save the current record as a labelled version",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordSave,
}

var recordRestoreCmd = &cobra.Command{
	Use:   "restore VERSION_ID",
	Short: "Restore a saved version as the current record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordRestore,
}

var (
	recordImportMode string
	recordExportFile string
)

func init() {
	recordImportCmd.Flags().StringVar(&recordImportMode, "mode", "merge", "Import mode: merge or overwrite")
	recordExportCmd.Flags().StringVarP(&recordExportFile, "out", "o", "", "Path to output JSON (default: stdout)")

	recordCmd.AddCommand(recordImportCmd, recordExportCmd, recordShowCmd, recordUndoCmd,
		recordVersionsCmd, recordSaveCmd, recordRestoreCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	mode, err := store.ParseImportMode(recordImportMode)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	record, err := store.ImportJSON(data)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	updated, err := st.Import(record, mode)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "Imported %s (%s): %d experiences\n", args[0], mode, len(updated.Experiences))
	return nil
}

func runRecordExport(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	data, err := store.ExportJSON(st.Export())
	if err != nil {
		return fmt.Errorf("failed to export record: %w", err)
	}

	if recordExportFile == "" {
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
	if err := os.WriteFile(recordExportFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(a.out, "Exported to %s\n", recordExportFile)
	return nil
}

func runRecordShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	a.printer.PrintRecord(st.Record())
	return nil
}

func runRecordUndo(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	_, undone, err := st.Undo()
	if err != nil {
		return err
	}
	if !undone {
		_, _ = fmt.Fprintln(a.out, "Nothing to undo")
		return nil
	}
	_, _ = fmt.Fprintf(a.out, "Undone (%d steps left)\n", st.HistoryLen())
	return nil
}

func runRecordVersions(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	versions := st.Versions()
	if len(versions) == 0 {
		_, _ = fmt.Fprintln(a.out, "No saved versions")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tLABEL\tCREATED")
	for _, v := range versions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Label, v.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runRecordSave(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	v, err := st.SaveVersion(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Saved version %s\n", v.ID)
	return nil
}

func runRecordRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	if _, err := st.RestoreVersion(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Restored version %s\n", args[0])
	return nil
}
