package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	SafeDelete service.SafeDeleteService
	RecycleBin service.RecycleBinService

	// IsInteractive reports whether stdin is a terminal; destructive
	// confirmations are only prompted interactively.
	IsInteractive bool
}

// NewRootCmd creates the top-level "coursebin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "coursebin",
		Short: "Safe deletion and recycle bin for course content",
	}

	root.AddCommand(
		newValidateCmd(app),
		newDeleteCmd(app),
		newRestoreCmd(app),
		newBinCmd(app),
		newServeCmd(app),
	)

	return root
}

// parseEntityType maps a case-insensitive type name to its EntityType.
func parseEntityType(s string) (domain.EntityType, error) {
	for _, et := range domain.AllEntityTypes {
		if strings.EqualFold(s, string(et)) {
			return et, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q (expected one of: Course, Chapter, Lesson, Account, Enrollment)", s)
}

// parseStatus accepts a status name or its integer value.
func parseStatus(s string) (domain.EntityStatus, error) {
	names := map[string]domain.EntityStatus{
		"published": domain.StatusPublished,
		"active":    domain.StatusActive,
		"inactive":  domain.StatusInactive,
		"archived":  domain.StatusArchived,
		"suspended": domain.StatusSuspended,
		"completed": domain.StatusCompleted,
	}
	if status, ok := names[strings.ToLower(s)]; ok {
		return status, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(domain.StatusPublished) || n > int(domain.StatusCompleted) {
		return 0, fmt.Errorf("invalid status %q (expected a name like active, or 1-6)", s)
	}
	return domain.EntityStatus(n), nil
}
