package system

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${serve_addr}"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx.Service, c.Addr)
	fmt.Printf("Serving meal plan API on %s (Ctrl+C to stop)\n", c.Addr)
	if err := srv.ListenAndServe(sigCtx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	fmt.Println("Server stopped.")
	return nil
}
