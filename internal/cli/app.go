package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/api"
	"folio/internal/log"
	"folio/internal/session"
	"folio/internal/sheets"
	"folio/internal/storage"
)

// ActivityLister reads the local activity log written by folio-worker.
type ActivityLister interface {
	RecentActivity(ctx context.Context, userID string, limit int) ([]storage.Activity, error)
}

// App carries what the commands share. The session is opened once, before
// the first command runs, from Tokens under SessionKey.
type App struct {
	API        *api.Client
	Tokens     session.TokenStore
	SessionKey string
	Logger     *log.Logger
	// Activity is nil when no local database is available.
	Activity ActivityLister
	// Exporter is nil when no spreadsheet is configured.
	Exporter sheets.MonthExporter

	store  *session.Store
	client *api.Client
}

// NewRootCmd builds the folioctl command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Command line client for the folio backend",
		Long: `folioctl talks to the same backend as the folio web front end.
The access token is kept in the local token store, so a login survives
between invocations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRegisterCmd(app),
		newCVCmd(app),
		newMonthsCmd(app),
		newMonthCmd(app),
		newBillCmd(app),
		newCommentsCmd(app),
		newCommentCmd(app),
		newAdminCmd(app),
		newExportCmd(app),
		newActivityCmd(app),
	)
	return root
}

func (a *App) open(ctx context.Context) error {
	if a.store != nil {
		return nil
	}
	if a.Logger == nil {
		a.Logger = log.Discard()
	}
	store, err := session.Open(ctx, a.Tokens, a.SessionKey, a.Logger.WithComponent(log.ComponentCLI))
	if err != nil {
		return err
	}
	a.store = store
	a.client = a.API.For(store)
	return nil
}

// requireLogin fails fast with the same error the API client would return.
func (a *App) requireLogin() error {
	if !a.store.IsAuthenticated() {
		return fmt.Errorf("%w: run 'folioctl login' first", api.ErrNoToken)
	}
	return nil
}

var errInvalidID = errors.New("id must be a positive integer")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", s, errInvalidID)
	}
	return id, nil
}
