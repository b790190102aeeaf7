package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clearcause/internal/adapter/repo"
	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/migrate"
	"clearcause/internal/wiring"
)

// Environment is bound into every command.
type Environment struct {
	Ctx    context.Context
	Stdout io.Writer
	Logger zerolog.Logger
	Config *infra.Config
}

type CLI struct {
	Migrate       MigrateCmd       `cmd:"" help:"Apply pending database migrations."`
	SetRole       SetRoleCmd       `cmd:"" help:"Change the role of an account."`
	ReleaseSeed   ReleaseSeedCmd   `cmd:"" help:"Release the seed share of an active campaign."`
	VerifyCharity VerifyCharityCmd `cmd:"" help:"Approve or reject a pending charity."`
}

type MigrateCmd struct {
	DryRun bool `help:"List pending migrations without applying them."`
}

func (cmd *MigrateCmd) Run(env *Environment) error {
	db, err := migrate.Open(env.Config.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.DryRun {
		all, err := migrate.Load()
		if err != nil {
			return err
		}
		for _, m := range all {
			fmt.Fprintln(env.Stdout, m.Version)
		}
		return nil
	}

	applied, err := migrate.Up(env.Ctx, db, env.Logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "applied %d migration(s)\n", len(applied))
	return nil
}

// SetRoleCmd writes the role straight to the store so the first admin can be
// bootstrapped.
type SetRoleCmd struct {
	Email string `required:"" help:"Email of the account to update."`
	Role  string `required:"" enum:"donor,charity,admin" help:"Role to assign (donor, charity, admin)."`
}

func (cmd *SetRoleCmd) Run(env *Environment) error {
	return withDB(env, func(db infra.DB) error {
		users := repo.NewUserRepository(db)
		user, err := users.GetByEmail(env.Ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
		if err != nil {
			return fmt.Errorf("load user %s: %w", cmd.Email, err)
		}
		if err := users.SetRole(env.Ctx, user.ID, domain.UserRole(cmd.Role)); err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		fmt.Fprintf(env.Stdout, "%s is now %s\n", user.Email, cmd.Role)
		return nil
	})
}

type ReleaseSeedCmd struct {
	Campaign string `required:"" help:"Campaign id."`
	As       string `required:"" help:"Email of the admin performing the release."`
}

func (cmd *ReleaseSeedCmd) Run(env *Environment) error {
	return withDB(env, func(db infra.DB) error {
		actor, err := adminActor(env.Ctx, db, cmd.As)
		if err != nil {
			return err
		}
		svc := wiring.New(wiring.Deps{DB: db, Logger: env.Logger})
		d, err := svc.Disbursements.ReleaseSeedFunds(env.Ctx, actor, cmd.Campaign)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "released %d to charity %s (disbursement %s)\n", d.Amount, d.CharityID, d.ID)
		return nil
	})
}

type VerifyCharityCmd struct {
	ID      string `required:"" help:"Charity id."`
	Approve bool   `xor:"decision" required:"" help:"Approve the charity."`
	Reject  bool   `xor:"decision" required:"" help:"Reject the charity."`
	Notes   string `help:"Reviewer notes; required when rejecting."`
	As      string `required:"" help:"Email of the reviewing admin."`
}

func (cmd *VerifyCharityCmd) Run(env *Environment) error {
	return withDB(env, func(db infra.DB) error {
		actor, err := adminActor(env.Ctx, db, cmd.As)
		if err != nil {
			return err
		}
		svc := wiring.New(wiring.Deps{DB: db, Logger: env.Logger})
		c, err := svc.Charities.Verify(env.Ctx, actor, cmd.ID, cmd.Approve, cmd.Notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s is now %s\n", c.OrganizationName, c.VerificationStatus)
		return nil
	})
}

func withDB(env *Environment, fn func(db infra.DB) error) error {
	pool, err := infra.NewDBPool(env.Ctx, env.Config, env.Logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(infra.NewSQLRunner(pool, env.Logger))
}

func adminActor(ctx context.Context, db infra.DB, email string) (domain.Actor, error) {
	user, err := repo.NewUserRepository(db).GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.Actor{}, fmt.Errorf("load admin %s: %w", email, err)
	}
	if user.Role != domain.UserRoleAdmin || !user.IsActive {
		return domain.Actor{}, errors.New(email + " is not an active admin")
	}
	return domain.Actor{UserID: user.ID, Role: user.Role}, nil
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("clearcause-admin"),
		kong.Description("ClearCause operator tasks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg, err := infra.LoadConfig()
	kctx.FatalIfErrorf(err)
	logger := infra.NewLogger("cli").With().Str("cmd", "admin").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&Environment{Ctx: ctx, Stdout: os.Stdout, Logger: logger, Config: cfg})
	kctx.FatalIfErrorf(err)
}
