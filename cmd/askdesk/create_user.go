package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/infrastructure/credentials"
	mongodb "github.com/askdesk/askdesk/internal/infrastructure/db/mongo"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> [password]",
	Short: "Add a credential to the MongoDB credential store",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordArg(cmd, args[1:])
		if err != nil {
			return err
		}
		uri, _ := cmd.Flags().GetString("mongo-uri")
		database, _ := cmd.Flags().GetString("mongo-db")
		cost, _ := cmd.Flags().GetInt("cost")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: uri, Database: database})
		if err != nil {
			return err
		}
		defer func() { _ = mongodb.Disconnect(client) }()

		store := mongodb.NewCredentialStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			return err
		}
		hash, err := credentials.Hash(password, cost)
		if err != nil {
			return err
		}
		if err := store.Create(ctx, domain.Credential{Username: args[0], PasswordHash: string(hash)}); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s in %s\n", args[0], database)
		return err
	},
}

func init() {
	createUserCmd.Flags().String("mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	createUserCmd.Flags().String("mongo-db", envOr("MONGO_DB", "askdesk"), "MongoDB database")
	createUserCmd.Flags().Int("cost", 0, "bcrypt cost (default 10)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
