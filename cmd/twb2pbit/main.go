package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/twbconv/twb2pbit/internal/converter"
	"github.com/twbconv/twb2pbit/internal/converter/mq"
	"github.com/twbconv/twb2pbit/internal/kafka"
	"github.com/twbconv/twb2pbit/internal/layout"
	"github.com/twbconv/twb2pbit/internal/options"
	"github.com/twbconv/twb2pbit/internal/path"
	"github.com/twbconv/twb2pbit/internal/pbit"
	"github.com/twbconv/twb2pbit/internal/response"
	"github.com/twbconv/twb2pbit/internal/schema"
	"github.com/twbconv/twb2pbit/internal/workbook"
)

type configuration struct {
	MQHost string `envconfig:"MQ_HOST" default:"localhost"`
	MQPort int    `envconfig:"MQ_PORT" default:"9093"`

	ConvertTopicRequest  string `envconfig:"CONVERT_TOPIC_REQUEST" default:"request"`
	ConvertTopicResponse string `envconfig:"CONVERT_TOPIC_RESPONSE" default:"response"`
}

const (
	prefixCfg   = ""
	serviceName = "twb2pbit"
)

func newID() string {
	return uuid.New().String()
}

func main() {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.WithPrefix(logger, "service", serviceName)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var (
		outputDir   string
		optionsFile string
		serve       bool
	)

	cmd := &cobra.Command{
		Use:   "twb2pbit [workbook.twb|workbook.twbx]",
		Short: "Convert a Tableau workbook into a Power BI template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options.Default()
			if optionsFile != "" {
				var err error
				if opts, err = options.Load(optionsFile); err != nil {
					return err
				}
			}

			svc, err := newService(outputDir, opts, logger)
			if err != nil {
				return err
			}

			if serve {
				runServe(svc, logger)
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("workbook file is required")
			}

			outputPath, err := svc.ConvertFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outputPath)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for the generated package")
	cmd.Flags().StringVar(&optionsFile, "options", "", "YAML file with conversion options")
	cmd.Flags().BoolVar(&serve, "serve", false, "consume conversion jobs from the queue")

	if err := cmd.Execute(); err != nil {
		level.Error(logger).Log("msg", "run", "err", err)
		os.Exit(1)
	}
}

func newService(outputDir string, opts options.Options, logger log.Logger) (converter.Service, error) {
	pathBuilder, err := path.NewBuilder(
		outputDir,
		newID,
	)
	if err != nil {
		return nil, fmt.Errorf("path init: %w", err)
	}

	return converter.NewService(
		workbook.Extract,
		workbook.Parse,

		schema.NewBuilder(opts),
		layout.NewBuilder(opts, newID),
		pbit.NewSerializer(),
		pbit.NewValidator(),
		pathBuilder,

		logger,
	), nil
}

func runServe(svc converter.Service, logger log.Logger) {
	var cfg configuration
	if err := envconfig.Process(prefixCfg, &cfg); err != nil {
		level.Error(logger).Log("msg", "configuration", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "initialization")

	address := fmt.Sprintf("%s:%d", cfg.MQHost, cfg.MQPort)
	mqKafka, err := kafka.NewMessageQueue(
		[]string{address},
	)
	if err != nil {
		level.Error(logger).Log("msg", "kafka init", "address", address, "err", err)
		os.Exit(1)
	}

	handler := mq.NewConvertHandler(
		svc,
		mq.NewConvertTransport(
			response.Build,
		),
		mqKafka.NewPublish(cfg.ConvertTopicResponse),
	)

	mqKafka.Consume(cfg.ConvertTopicRequest, handler)

	go func() {
		level.Info(logger).Log("msg", "kafka listener turn on")
		mqKafka.ListenAndServe()
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	level.Info(logger).Log("msg", "received signal", "signal", <-c)

	level.Info(logger).Log("msg", "kafka listener shutdown")
	mqKafka.Shutdown()
	level.Info(logger).Log("msg", "stop service")
}
