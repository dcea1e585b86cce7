package main

import (
	"context"
	"fmt"
	"log"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/domain"
	"rentalhub/internal/modules/notification"
	"rentalhub/internal/pkg/qr"
	"rentalhub/internal/repository"
)

func openDB(cmd *cobra.Command) (*config.Config, *gorm.DB, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect failed: %w", err)
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the notification, chat and push subscription tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("Migration complete.")
			return nil
		},
	}
}

func cleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete notifications older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			if days == 0 {
				days = cfg.Cleanup.RetentionDays
			}

			svc := notification.NewService(repository.NewNotificationRepository(db), nil, nil)
			ctx, cancel := context.WithTimeout(cmd.Context(), 4*time.Minute)
			defer cancel()

			n, err := svc.Cleanup(ctx, days)
			if err != nil {
				return fmt.Errorf("cleanup notifications failed: %w", err)
			}
			log.Printf("notification cleanup completed: deleted=%d retention=%dd", n, days)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "retention in days (defaults to the configured value)")
	return cmd
}

// seedCmd fills the local store with sample notifications for one user.
func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample notifications for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			receiver, _ := cmd.Flags().GetString("receiver")
			sender, _ := cmd.Flags().GetString("sender")

			svc := notification.NewService(repository.NewNotificationRepository(db), nil, nil)
			samples := []domain.NotificationInput{
				{Type: domain.NotificationBooking, Message: "You have a new booking request for room A101"},
				{Type: domain.NotificationPayment, Message: "Bill 2025-07 has been paid", ContractID: "contract-seed"},
				{Type: domain.NotificationResident, Message: "A new resident was registered"},
				{Type: domain.NotificationRequest, Message: "You have a new request from a tenant: leaking tap"},
			}
			for _, in := range samples {
				in.ReceiverID = receiver
				in.SenderID = sender
				if _, err := svc.Create(cmd.Context(), in); err != nil {
					return err
				}
			}
			log.Printf("seeded %d notifications for %s", len(samples), receiver)
			return nil
		},
	}
	cmd.Flags().String("receiver", "landlord-1", "receiving user id")
	cmd.Flags().String("sender", "tenant-1", "sending user id")
	return cmd
}

func vapidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vapid",
		Short: "Generate a VAPID key pair for web push",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, pub, err := webpush.GenerateVAPIDKeys()
			if err != nil {
				return err
			}
			fmt.Printf("VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", pub, priv)
			return nil
		},
	}
}

func qrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Print a bank transfer QR image URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, _ := cmd.Flags().GetString("bin")
			account, _ := cmd.Flags().GetString("account")
			amount, _ := cmd.Flags().GetFloat64("amount")
			info, _ := cmd.Flags().GetString("info")

			u, err := qr.PaymentURL(qr.Params{BinCode: bin, BankNumber: account, Amount: amount, Description: info})
			if err != nil {
				return err
			}
			fmt.Println(u)
			return nil
		},
	}
	cmd.Flags().String("bin", "", "bank bin code")
	cmd.Flags().String("account", "", "bank account number")
	cmd.Flags().Float64("amount", 0, "transfer amount")
	cmd.Flags().String("info", "", "transfer description")
	return cmd
}
