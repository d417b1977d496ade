package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/config"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/handlers"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/setup"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/postgres"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/redis/processed"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/eventbus"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service/dispatch"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/expo"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/keycloak"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/smtp"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

const (
	groupEmailService        = "email-service"
	groupNotificationService = "notification-service"
)

type App struct {
	Bus    *eventbus.Bus
	Server *echo.Echo
	Logger *types.Logger

	emailDispatcher *dispatch.EmailDispatcher
	pushDispatcher  *dispatch.PushDispatcher
	inAppDispatcher *dispatch.InAppDispatcher
	processed       *processed.Storage
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	busLogger, err := logger.Named("bus")
	if err != nil {
		return nil, err
	}
	dispatchLogger, err := logger.Named("dispatch")
	if err != nil {
		return nil, err
	}
	serviceLogger, err := logger.Named("service")
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(cfg.Redis.Streams, eventbus.Options{
		Partitions: viper.GetInt("bus.partitions"),
	}, busLogger)

	userStorage := postgres.NewUserStorage(cfg.Database)
	matchStorage := postgres.NewMatchStorage(cfg.Database)
	notificationStorage := postgres.NewNotificationStorage(cfg.Database)
	preferenceStorage := postgres.NewPreferenceStorage(cfg.Database)
	pushTokenStorage := postgres.NewPushTokenStorage(cfg.Database)

	publisher := service.NewPublisher(bus, serviceLogger)
	preferenceService := service.NewPreferenceService(preferenceStorage, serviceLogger)
	notificationService := service.NewNotificationService(notificationStorage)
	pushTokenService := service.NewPushTokenService(pushTokenStorage)

	identity := keycloak.NewClient(keycloak.Options{
		BaseURL:      viper.GetString("service.keycloak.url"),
		Realm:        viper.GetString("service.keycloak.realm"),
		ClientID:     viper.GetString("service.keycloak.client-id"),
		ClientSecret: viper.GetString("service.keycloak.client-secret"),
	})

	userService := service.NewUserService(
		userStorage,
		cfg.Redis.Users,
		cfg.Redis.Codes,
		identity,
		publisher,
		preferenceService,
		serviceLogger,
	)
	matchService := service.NewMatchService(matchStorage, cfg.Redis.Matches, publisher)

	mailClient := smtp.NewClient(cfg.SMTPDialer)
	pushClient := expo.NewClient()

	server := setup.Setup(setup.Handlers{
		Users:         handlers.NewUserHandler(userService),
		Matches:       handlers.NewMatchHandler(matchService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Preferences:   handlers.NewPreferenceHandler(preferenceService),
		PushTokens:    handlers.NewPushTokenHandler(pushTokenService),
	}, setup.Options{
		JWTSecret: []byte(viper.GetString("service.auth.jwt-secret")),
		ClientID:  viper.GetString("service.auth.client-id"),
	}, appLogger)

	return &App{
		Bus:             bus,
		Server:          server,
		Logger:          appLogger,
		emailDispatcher: dispatch.NewEmailDispatcher(mailClient, preferenceService, dispatchLogger),
		pushDispatcher:  dispatch.NewPushDispatcher(pushTokenStorage, pushClient, preferenceService, dispatchLogger),
		inAppDispatcher: dispatch.NewInAppDispatcher(notificationStorage, dispatchLogger),
		processed:       cfg.Redis.Processed,
	}, nil
}

// Start registers every consumer group subscription, then serves HTTP until
// the process is told to stop.
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := eventbus.SubscribeOptions{
		AckOnFailure:    viper.GetBool("notifications.acknowledge-on-failure"),
		DispatchTimeout: viper.GetDuration("bus.dispatch-timeout"),
	}

	dispatchLogger, err := logger.Named("dispatch")
	if err != nil {
		return err
	}

	wrap := func(handler dispatch.Handler) eventbus.Handler {
		if viper.GetBool("notifications.idempotency.enabled") {
			ttl := viper.GetDuration("notifications.idempotency.ttl")
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			handler = dispatch.WithIdempotency(a.processed, ttl, dispatchLogger, handler)
		}
		return eventbus.Handler(handler)
	}

	subscriptions := []struct {
		topic   string
		group   string
		handler dispatch.Handler
	}{
		{eventbus.TopicEmailVerification, groupEmailService, a.emailDispatcher.Handle},
		{eventbus.TopicMatchEmails, groupEmailService, a.emailDispatcher.Handle},
		{eventbus.TopicPasswordReset, groupEmailService, a.emailDispatcher.Handle},
		{eventbus.TopicPushNotifications, groupNotificationService, a.pushDispatcher.Handle},
		{eventbus.TopicMatchEvents, groupNotificationService, a.inAppDispatcher.Handle},
	}
	for _, sub := range subscriptions {
		if err := a.Bus.Subscribe(ctx, sub.topic, sub.group, wrap(sub.handler), opts); err != nil {
			return fmt.Errorf("failed to subscribe %s to %s: %w", sub.group, sub.topic, err)
		}
	}

	go func() {
		<-ctx.Done()
		a.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			a.Logger.Errorf("server shutdown: %v", err)
		}
	}()

	a.Logger.Info("Server starting")
	addr := fmt.Sprintf(":%d", viper.GetInt("service.port"))
	if err := a.Server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
