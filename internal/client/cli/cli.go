package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	httpapi "github.com/ivmaks/raskraska/internal/client/api"
	"github.com/ivmaks/raskraska/internal/client/outbox"
	"github.com/ivmaks/raskraska/internal/client/session"
	"github.com/ivmaks/raskraska/internal/client/snapshot"
	"github.com/ivmaks/raskraska/internal/client/storage"
)

// sessionUndoBudget лимит undo на одну страницу.
// Счетчик использованного бюджета переживает перезапуск клиента.
const sessionUndoBudget = 50

// Deps зависимости CLI-команд
type Deps struct {
	API    httpapi.ClientAPI
	KV     storage.KVStorage
	Meta   storage.MetadataStorage
	Logger *slog.Logger
}

// NewLogger возвращает логгер CLI-клиента
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// openSession восстанавливает сессию страницы из каталога
func openSession(ctx context.Context, pageID string, deps Deps) (*session.PageSession, error) {
	page, err := FindPage(pageID)
	if err != nil {
		return nil, err
	}

	s, err := session.NewPageSession(session.Config{
		PageID:      page.ID,
		ContentHash: page.ContentHash,
		RegionOrder: page.RegionOrder,
		Palette:     page.Palette,
		UndoBudget:  sessionUndoBudget,
	}, session.Deps{
		Snapshots: snapshot.NewStore(deps.KV, deps.Logger),
		Outbox:    outbox.New(deps.KV, deps.Logger),
		API:       deps.API,
		Metadata:  deps.Meta,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open page %q: %w", pageID, err)
	}

	if err := s.Boot(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to restore page %q: %w", pageID, err)
	}

	return s, nil
}

// currentPageID возвращает идентификатор последней открытой страницы
func currentPageID(ctx context.Context, deps Deps) (string, error) {
	store := snapshot.NewStore(deps.KV, deps.Logger)
	pageID, err := store.LoadLastPage(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read current page: %w", err)
	}
	if pageID == "" {
		return "", fmt.Errorf("no page is open. Run 'raskraska open <page>' first")
	}
	return pageID, nil
}

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println("Raskraska - coloring book client")
	fmt.Println()
	fmt.Println("Usage: raskraska [flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login [initData]        Authenticate with Telegram initData (or RASKRASKA_INIT_DATA env)")
	fmt.Println("  logout                  Remove saved access token")
	fmt.Println("  pages                   List available pages")
	fmt.Println("  open <page>             Open a page and make it current")
	fmt.Println("  fill <region> <color>   Paint a region of the current page")
	fmt.Println("  undo                    Undo the last change on the current page")
	fmt.Println("  reset [--all]           Clear the current page (--all wipes local state)")
	fmt.Println("  status                  Show authentication and page status")
	fmt.Println("  sync                    Push pending changes to the server")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server string          Server URL (default http://localhost:8080)")
	fmt.Println("  -db string              Path to local database")
	fmt.Println("  -version                Show version information")
}
