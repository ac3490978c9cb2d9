package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/propertymind/mietermatch/internal/ai/gemini"
	"github.com/propertymind/mietermatch/internal/logger"
	"github.com/propertymind/mietermatch/internal/market"
	"github.com/propertymind/mietermatch/internal/matching"
	"github.com/propertymind/mietermatch/internal/secrets"
)

const (
	PromptConfirm    = "Confirm selection"
	PromptAbort      = "Abort without sending"
	PromptPoolToFile = "Dump tenant pool to file"
)

var errAbort = errors.New("abort requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank tenant profiles for a listing and record the landlord's pick",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("property", "p", "", "path to the property snapshot (overrides config)")
	matchCmd.Flags().StringP("tenants", "t", "", "path to the tenants snapshot (overrides config)")
	matchCmd.Flags().StringP("selection-file", "o", "", "file receiving the confirmed tenant ids")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "take the top candidates up to the cap without prompting")

	viper.BindPFlag("property", matchCmd.Flags().Lookup("property"))
	viper.BindPFlag("tenants", matchCmd.Flags().Lookup("tenants"))
	viper.BindPFlag("selection-file", matchCmd.Flags().Lookup("selection-file"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting mietermatch", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}
	if strings.TrimSpace(config.Property) == "" || strings.TrimSpace(config.Tenants) == "" {
		logger.Fatal("property and tenants snapshot paths are required",
			zap.String("hint", "set them in the config file or via --property/--tenants"),
		)
	}

	property, err := market.PropertyFromFile(config.Property)
	if err != nil {
		logger.Fatal("loading property snapshot", zap.Error(err))
	}

	tenants, err := market.TenantsFromFile(config.Tenants)
	if err != nil {
		logger.Fatal("loading tenants snapshot", zap.Error(err))
	}

	logger.Info("snapshots loaded",
		zap.String("property_id", property.ID),
		zap.Int("tenant_count", tenants.Len()),
	)

	var matchingCfg matching.Config
	if config.Matching != nil {
		matchingCfg = *config.Matching
	}
	engine := matching.NewEngine(matchingCfg, logger)

	scorer := prepareScorer(ctx, config.AI, logger)

	ranked, err := engine.Rank(ctx, property, tenants, scorer)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	if len(ranked) == 0 {
		logger.Info("exiting", zap.String("reason", "no eligible candidates"))
		return
	}

	logger.Info("shortlist ready", zap.Int("count", len(ranked)))

	autoApprove := strings.EqualFold(cmd.Flag("auto-approve").Value.String(), "true")

	accepted, err := chooseCandidates(engine, ranked, tenants, autoApprove, logger)
	if err != nil {
		if errors.Is(err, errAbort) {
			logger.Info("exiting", zap.String("reason", "selection aborted"))
			return
		}
		logger.Fatal("selecting candidates", zap.Error(err))
	}

	if len(accepted) == 0 {
		logger.Info("exiting", zap.String("reason", "nothing selected"))
		return
	}

	selection := market.NewSelection(property.ID, accepted)

	filename := strings.TrimSpace(config.SelectionFile)
	if filename == "" {
		filename, err = selection.DumpToTmpFile()
	} else {
		err = selection.ToFile(filename)
	}
	if err != nil {
		logger.Fatal("writing selection", zap.Error(err))
	}

	logger.Info("selection recorded for notification",
		zap.String("filename", filename),
		zap.Int("count", len(accepted)),
	)
}

// chooseCandidates runs the interactive toggle loop, or takes the top
// candidates up to the cap when autoApprove is set. The cap check itself
// always goes through the engine.
func chooseCandidates(engine *matching.Engine, ranked []matching.RankedCandidate, tenants *market.Tenants, autoApprove bool, logger *zap.Logger) ([]string, error) {
	if autoApprove {
		limit := engine.Config().SelectionCap
		if limit > len(ranked) {
			limit = len(ranked)
		}
		ids := make([]string, 0, limit)
		for _, candidate := range ranked[:limit] {
			ids = append(ids, candidate.Tenant.ID)
		}
		return engine.Select(ranked, ids)
	}

	var chosen []string
	for {
		items := make([]string, 0, len(ranked)+3)
		for _, candidate := range ranked {
			marker := "[ ]"
			if containsID(chosen, candidate.Tenant.ID) {
				marker = "[x]"
			}
			label := fmt.Sprintf("%s %s | score %d | %s", marker, candidate.Tenant.ID, candidate.Score, candidate.Tenant.DesiredLocation)
			if candidate.Reasoning != "" {
				label = fmt.Sprintf("%s | %s", label, candidate.Reasoning)
			}
			items = append(items, label)
		}
		items = append(items, PromptPoolToFile, PromptConfirm, PromptAbort)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Toggle candidates (%d chosen, cap %d) and confirm", len(chosen), engine.Config().SelectionCap),
			Items: items,
			Size:  12,
		}

		_, picked, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		switch picked {
		case PromptPoolToFile:
			filename, err := tenants.DumpToTmpFile()
			if err != nil {
				return nil, fmt.Errorf("dump tenant pool to file: %w", err)
			}
			logger.Info("dumping tenant pool to file", zap.String("filename", filename))
		case PromptConfirm:
			accepted, err := engine.Select(ranked, chosen)
			if errors.Is(err, matching.ErrSelectionCapExceeded) {
				logger.Warn("too many candidates chosen", zap.Error(err))
				continue
			}
			return accepted, err
		case PromptAbort:
			return nil, errAbort
		default:
			id, err := resolveToggle(tenants, picked)
			if err != nil {
				return nil, err
			}
			chosen = toggleID(chosen, id)
		}
	}
}

// resolveToggle extracts the tenant id from a shortlist row and verifies
// it against the pool.
func resolveToggle(tenants *market.Tenants, picked string) (string, error) {
	id := strings.Fields(picked)[1]
	if tenants.FindByID(id) == nil {
		return "", fmt.Errorf("there is no such tenant id %s", id)
	}
	return id, nil
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func toggleID(ids []string, id string) []string {
	for idx, existing := range ids {
		if existing == id {
			return append(ids[:idx], ids[idx+1:]...)
		}
	}
	return append(ids, id)
}

// prepareScorer builds the configured scorer. A failing Gemini setup
// degrades to the deterministic scorer instead of stopping the round.
func prepareScorer(ctx context.Context, config *AIConfig, logger *zap.Logger) matching.Scorer {
	base := matching.NewBaseScorer(0)

	if config == nil || !config.Enabled {
		return base
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider, using deterministic scorer", zap.String("provider", config.Provider))
		return base
	}
	if config.Gemini == nil {
		logger.Warn("gemini configuration missing, using deterministic scorer")
		return base
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("gemini api key unavailable, using deterministic scorer",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return base
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		logger.Warn("building gemini generator failed, using deterministic scorer", zap.Error(err))
		return base
	}

	scorerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	timeout := time.Duration(config.Gemini.TimeoutSeconds) * time.Second

	return gemini.NewScorer(generator, timeout, config.Gemini.MaxLogLength, scorerLogger)
}
