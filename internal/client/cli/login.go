package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ivmaks/raskraska/internal/client/storage"
)

// initDataEnv переменная окружения с Telegram initData,
// удобна для скриптов и отладки
const initDataEnv = "RASKRASKA_INIT_DATA"

// RunLogin обменивает Telegram initData на access token.
// initData берется из аргумента или из переменной окружения.
func RunLogin(ctx context.Context, args []string, deps Deps) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	initData, err := getInitData(args)
	if err != nil {
		return err
	}

	if err := ensureDeviceID(ctx, deps.Meta); err != nil {
		return fmt.Errorf("failed to ensure device id: %w", err)
	}

	resp, err := deps.API.AuthTelegram(ctx, initData)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := deps.Meta.SaveAccessToken(ctx, resp.AccessToken); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}

	fmt.Println("✓ Logged in successfully!")
	fmt.Printf("User ID: %d\n", resp.UserID)
	fmt.Printf("Token valid for: %d seconds\n", resp.ExpiresIn)

	return nil
}

// RunLogout удаляет сохраненный access token.
// Локальный прогресс при этом не трогаем.
func RunLogout(ctx context.Context, deps Deps) error {
	if err := deps.Meta.DeleteAccessToken(ctx); err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}

	fmt.Println("✓ Logged out. Local progress is kept on this device.")

	return nil
}

func getInitData(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if envData := os.Getenv(initDataEnv); envData != "" {
		return envData, nil
	}
	return "", fmt.Errorf("initData is required: pass it as an argument or set %s", initDataEnv)
}

// ensureDeviceID генерирует устойчивый идентификатор устройства
// при первом запуске
func ensureDeviceID(ctx context.Context, meta storage.MetadataStorage) error {
	_, err := meta.GetDeviceID(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrDeviceIDNotFound) {
		return err
	}

	return meta.SaveDeviceID(ctx, uuid.New().String())
}
