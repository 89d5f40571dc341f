// Package main — economyctl, консоль оператора экономики.
// Работает напрямую с хранилищем: движок на время админских
// операций должен быть остановлен.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"astralrp.ru/economy-bot/internal/app"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/config"
)

var (
	adminID  int64
	password string
)

func main() {
	log.SetLevel(log.WarnLevel)

	root := &cobra.Command{
		Use:   "economyctl",
		Short: "Консоль оператора экономики",
		Long:  "Прямые операции над таблицей аккаунтов: балансы, выдачи, сбросы и статистика.",
	}

	root.PersistentFlags().Int64Var(&adminID, "admin-id", 0, "ID администратора")
	root.PersistentFlags().StringVar(&password, "password", os.Getenv("ECONOMYCTL_PASSWORD"), "пароль администратора (или ECONOMYCTL_PASSWORD)")

	root.AddCommand(
		balanceCmd(),
		giveCmd(),
		takeCmd(),
		giveItemCmd(),
		resetCmd(),
		wipeCmd(),
		statsCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp загружает конфигурацию, собирает движок и передаёт его fn.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("конфигурация: %w", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	return fn(ctx, a)
}

// withAuthorizedApp дополнительно проверяет права оператора.
func withAuthorizedApp(fn func(ctx context.Context, a *app.App) error) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		if err := a.Admin.Authorize(adminID, password); err != nil {
			return err
		}
		return fn(ctx, a)
	})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректный ID %q", arg)
	}
	return id, nil
}

func parseAmount(arg string) (int64, error) {
	amount, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректная сумма %q", arg)
	}
	return amount, nil
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user_id>",
		Short: "Показать балансы пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app.App) error {
				b := a.Economy.Balance(ctx, userID)
				fmt.Printf("Кошелёк: %s\nБанк:    %s\nВсего:   %s\n",
					common.FormatMoney(b.Wallet), common.FormatMoney(b.Bank), common.FormatMoney(b.Total))
				return nil
			})
		},
	}
}

func giveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "give <user_id> <amount>",
		Short: "Начислить деньги в кошелёк",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withAuthorizedApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Admin.AddMoney(ctx, userID, amount)
				if err != nil {
					return err
				}
				fmt.Printf("Кошелёк пользователя %d: %s\n", userID, common.FormatMoney(res.Wallet))
				return nil
			})
		},
	}
}

func takeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <user_id> <amount>",
		Short: "Изъять деньги из кошелька",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withAuthorizedApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Admin.RemoveMoney(ctx, userID, amount)
				if err != nil {
					return err
				}
				fmt.Printf("Кошелёк пользователя %d: %s\n", userID, common.FormatMoney(res.Wallet))
				return nil
			})
		},
	}
}

func giveItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "give-item <user_id> <item_id>",
		Short: "Выдать предмет (включая секретные)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID := args[1]
			return withAuthorizedApp(func(ctx context.Context, a *app.App) error {
				if err := a.Admin.GiveItem(ctx, userID, itemID); err != nil {
					return err
				}
				fmt.Printf("Предмет %s выдан пользователю %d\n", itemID, userID)
				return nil
			})
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <user_id>",
		Short: "Сбросить аккаунт пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withAuthorizedApp(func(ctx context.Context, a *app.App) error {
				if err := a.Admin.ResetUser(ctx, userID); err != nil {
					return err
				}
				fmt.Printf("Аккаунт пользователя %d сброшен\n", userID)
				return nil
			})
		},
	}
}

func wipeCmd() *cobra.Command {
	var confirmation string
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Стереть всю таблицу аккаунтов (необратимо)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthorizedApp(func(ctx context.Context, a *app.App) error {
				if err := a.Admin.WipeAll(ctx, confirmation); err != nil {
					return err
				}
				fmt.Println("Таблица аккаунтов стёрта")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&confirmation, "confirm", "", "подтверждающее слово")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Сводка по экономике",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				s := a.Admin.Stats()
				fmt.Printf("Аккаунтов:     %d\n", s.Accounts)
				fmt.Printf("В кошельках:   %s\n", common.FormatMoney(s.TotalWallet))
				fmt.Printf("В банках:      %s\n", common.FormatMoney(s.TotalBank))
				fmt.Printf("Всего денег:   %s\n", common.FormatMoney(s.TotalMoney))
				return nil
			})
		},
	}
}
