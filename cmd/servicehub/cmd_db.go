package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/servicehub/config"
	"github.com/shashiranjanraj/servicehub/pkg/database"
)

// servicehub db:index: create the unique email and order listing indexes.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes servicehub relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := config.Require("MONGODB_URI"); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
		if err != nil {
			return err
		}
		defer store.Close(context.Background()) //nolint:errcheck

		names, err := store.EnsureIndexes(ctx)
		for _, n := range names {
			fmt.Println("✅ ", n)
		}
		return err
	},
}
