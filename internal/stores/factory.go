package stores

import (
	"context"

	"github.com/sdhector/secretcheck/internal/config"
	scerrors "github.com/sdhector/secretcheck/internal/errors"
	pkgexec "github.com/sdhector/secretcheck/pkg/exec"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// New builds the secret store named by the manifest's store.type.
func New(ctx context.Context, cfg *config.Config, executor pkgexec.CommandExecutor) (secretstore.Store, error) {
	def := cfg.Definition
	storeCfg := def.Store.Config
	if storeCfg == nil {
		storeCfg = map[string]interface{}{}
	}

	switch def.Store.Type {
	case "", "gcloud":
		return NewGcloudStore(def.Project, executor, cfg.Logger), nil
	case "gcp.secretmanager":
		return NewGCPSecretManagerStore(ctx, def.Project, storeCfg, cfg.Logger)
	case "aws.secretsmanager":
		return NewAWSSecretsManagerStore(ctx, storeCfg, cfg.Logger)
	case "azure.keyvault":
		return NewAzureKeyVaultStore(storeCfg, cfg.Logger)
	case "literal":
		return NewLiteralStore(storeCfg, cfg.Logger)
	default:
		return nil, scerrors.ConfigError{
			Field:      "store.type",
			Value:      def.Store.Type,
			Message:    "unknown store type",
			Suggestion: "Use one of: gcloud, gcp.secretmanager, aws.secretsmanager, azure.keyvault, literal",
		}
	}
}
