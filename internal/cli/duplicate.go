package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/pestops-backend/internal/app"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
)

// DuplicateCmd returns the duplicate command
func DuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <appointment-id>",
		Short: "Copy the previous appointment's records onto an appointment",
		Long: `Overwrite the appointment's operation sheet, rodent register, certificate
and services with those of the appointment right before it in its project.

This is the same operation as POST /api/appointment/<id>/duplicate-from-previous.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := uuid.Parse(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}

			a, err := app.New(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Services.AppointmentAggregate.DuplicateFromPrevious(cmd.Context(), target)
			if err != nil {
				printDuplicateFailure(cmd.ErrOrStderr(), target, err)
				return fmt.Errorf("duplicate failed")
			}
			printDuplicateResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printDuplicateResult(w io.Writer, res domainagg.DuplicateResult) {
	fmt.Fprintf(w, "%s %s <- %s\n", color.New(color.FgGreen).Sprint("DUPLICATED"), res.TargetAppointmentID, res.SourceAppointmentID)
	fmt.Fprintf(w, "  areas cloned: %d\n", len(res.ClonedAreaIDs))
	fmt.Fprintf(w, "  services:     %d\n", len(res.ServiceIDs))
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "  %s %s (source has none)\n", color.New(color.FgYellow).Sprint("SKIPPED"), s)
	}
}

func printDuplicateFailure(w io.Writer, target uuid.UUID, err error) {
	label := color.New(color.FgRed).Sprint("FAILED")
	if domainagg.IsCode(err, domainagg.CodeNotFound) {
		label = color.New(color.FgYellow).Sprint("NOT FOUND")
	}
	fmt.Fprintf(w, "%s %s: %s\n", label, target, domainagg.SafeMessage(err))
}
