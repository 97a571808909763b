// Command tagpolicy evaluates a batch of sensor outputs against a tag
// policy version and writes the result envelopes as JSON. The raw tag sets
// are read-only input; re-running with a newer policy file produces fresh
// envelopes without touching the raw data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/refitd/tagpolicy"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "note: .env file not found, using system environment")
	}

	var (
		inPath     = flag.String("in", "", "input items JSON file (default stdin)")
		outPath    = flag.String("out", "", "output results JSON file (default stdout)")
		policyPath = flag.String("policy", getEnv("TAGPOLICY_POLICY_FILE", ""), "policy YAML file (default built-in "+tagpolicy.DefaultPolicyVersion+")")
		workers    = flag.Int("workers", getEnvAsInt("TAGPOLICY_WORKERS", 4), "concurrent evaluations")
	)
	flag.Parse()

	logger := newLogger(getEnv("LOG_FILE_PATH", "tagpolicy.log"), getEnv("GO_ENV", "development") == "production")
	defer logger.Sync()

	if err := run(logger, *inPath, *outPath, *policyPath, *workers); err != nil {
		logger.Error("batch failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, inPath, outPath, policyPath string, workers int) error {
	policy := tagpolicy.DefaultPolicy()
	if policyPath != "" {
		loaded, err := tagpolicy.LoadPolicyFile(policyPath)
		if err != nil {
			return err
		}
		policy = loaded
	}
	engine, err := tagpolicy.NewEngine(policy)
	if err != nil {
		return err
	}
	logger.Info("policy loaded", zap.String("version", engine.PolicyVersion()))

	items, err := readItems(inPath)
	if err != nil {
		return err
	}

	results, err := engine.EvaluateBatch(context.Background(), items, workers)
	if err != nil {
		return err
	}

	counts := map[tagpolicy.CurationStatus]int{}
	for _, r := range results {
		counts[r.CurationStatus]++
	}
	logger.Info("batch evaluated",
		zap.Int("items", len(results)),
		zap.Int("approved", counts[tagpolicy.StatusApproved]),
		zap.Int("needs_review", counts[tagpolicy.StatusNeedsReview]),
		zap.Int("needs_fix", counts[tagpolicy.StatusNeedsFix]),
		zap.Int("workers", workers),
	)

	return writeResults(outPath, results)
}

func readItems(path string) ([]tagpolicy.Item, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	var items []tagpolicy.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func writeResults(path string, results []tagpolicy.ItemResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// newLogger builds a JSON logger that writes to a rotating file and to the
// console. In production the console output is JSON as well.
func newLogger(logFilePath string, isProd bool) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // Megabytes
		MaxBackups: 5,  // Files
		MaxAge:     30, // Days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	fileCore := zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), zap.InfoLevel)

	var consoleEncoder zapcore.Encoder
	if isProd {
		consoleEncoder = jsonEncoder
	} else {
		devConfig := zap.NewDevelopmentEncoderConfig()
		devConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devConfig)
	}
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), zap.InfoLevel)

	return zap.New(zapcore.NewTee(fileCore, consoleCore))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
