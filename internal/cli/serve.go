package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iqbalbaharum/serum-swap-client/internal/adapter"
	"github.com/iqbalbaharum/serum-swap-client/internal/config"
	"github.com/iqbalbaharum/serum-swap-client/internal/handler"
	"github.com/iqbalbaharum/serum-swap-client/internal/market"
	"github.com/iqbalbaharum/serum-swap-client/internal/rpc"
	"github.com/iqbalbaharum/serum-swap-client/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve market keys and instructions over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type Server struct {
	Router *chi.Mux
}

func CreateServer(deps handler.Dependencies) *Server {
	server := &Server{
		Router: handler.CreateRoutes(deps),
	}

	return server
}

// newMarketService wires the ledger client and, when REDIS_ADDR is set, the
// market keys cache.
func newMarketService(ctx context.Context, rpcClient *rpc.Client) (*market.Service, func(), error) {
	var cache storage.MarketKeysCache
	cleanup := func() {}

	if config.RedisAddr != "" {
		if err := adapter.InitRedisClient(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB); err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = adapter.CloseRedisClient() }

		redisClient, err := adapter.GetRedisClient()
		if err != nil {
			return nil, cleanup, err
		}

		storage.Init(redisClient, config.DexProgramID)
		cache = storage.MarketKeys
	}

	return market.NewService(rpcClient, config.DexProgramID, cache, logger.Named("market")), cleanup, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rpcClient := rpc.NewClient(config.RpcHttpUrl)

	markets, cleanup, err := newMarketService(ctx, rpcClient)
	defer cleanup()
	if err != nil {
		return err
	}

	logger.Info("Initialized ENVIRONMENT successfully",
		zap.Stringer("swap_program", config.SwapProgramID),
		zap.Stringer("dex_program", config.DexProgramID),
		zap.Stringer("generation", config.Generation),
		zap.Bool("cache", config.RedisAddr != ""))

	server := CreateServer(handler.Dependencies{
		Markets:    markets,
		Blockhash:  rpcClient,
		Programs:   config.Programs(),
		Generation: config.Generation,
		Log:        logger.Named("handler"),
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.HttpPort),
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Info("server running", zap.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
