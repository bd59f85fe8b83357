package main

import (
	"booking-backend/config"
	apiv1 "booking-backend/controllers/v1"
	"booking-backend/controllers/v1/dict"
	"booking-backend/fiberlog"
	"booking-backend/initializers"
	"booking-backend/middleware"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimit,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	if config.Conf.App.ErrNotifyAddr != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	}
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimit)))
	apiv1.InitHealthApiRouters(apiV1, initializers.HealthCheck)
	apiv1.InitAuthApiRouters(apiV1)

	//сотрудники, переговорные, заявки
	secured := apiV1.Group("", middleware.AuthorizationRequired())
	apiv1.InitEmployeeApiRouters(secured)
	apiv1.InitMeetingRoomApiRouters(secured)
	apiv1.InitBookingRequestApiRouters(secured)
	apiv1.InitVacationRequestApiRouters(secured)
	dict.InitEquipmentDictApiRouters(secured)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
