package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvp-joe/ubidoc/internal/ingest"
)

// Run browses the store's table until the user quits or ctx is done.
// Tables published while browsing replace the view's table.
func Run(ctx context.Context, store *ingest.Store) error {
	p := tea.NewProgram(New(store.Table()), tea.WithAltScreen(), tea.WithContext(ctx))
	store.OnPublish(func(s *ingest.Snapshot) {
		p.Send(TableMsg{Table: s.Table})
	})
	_, err := p.Run()
	return err
}
