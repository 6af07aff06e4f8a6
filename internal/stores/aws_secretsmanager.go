package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// SecretsManagerAPI is the slice of the AWS Secrets Manager client the
// store needs, narrowed for test fakes.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManagerStore reads secrets from AWS Secrets Manager. Config
// keys: region (default us-east-1), endpoint (LocalStack/testing),
// access_key_id + secret_access_key (static credentials for testing).
type AWSSecretsManagerStore struct {
	client SecretsManagerAPI
	region string
	logger *logging.Logger
}

// AWSOption configures an AWSSecretsManagerStore.
type AWSOption func(*AWSSecretsManagerStore)

// WithSecretsManagerClient injects a custom client (for testing).
func WithSecretsManagerClient(client SecretsManagerAPI) AWSOption {
	return func(s *AWSSecretsManagerStore) {
		s.client = client
	}
}

// NewAWSSecretsManagerStore creates an AWS-backed store.
func NewAWSSecretsManagerStore(ctx context.Context, cfg map[string]interface{}, logger *logging.Logger, opts ...AWSOption) (*AWSSecretsManagerStore, error) {
	region := "us-east-1"
	if r, ok := cfg["region"].(string); ok && r != "" {
		region = r
	}

	s := &AWSSecretsManagerStore{region: region, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		configOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}

		accessKey, _ := cfg["access_key_id"].(string)
		secretKey, _ := cfg["secret_access_key"].(string)
		if accessKey != "" && secretKey != "" {
			configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var clientOpts []func(*secretsmanager.Options)
		if endpoint, ok := cfg["endpoint"].(string); ok && endpoint != "" {
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = aws.String(endpoint)
			})
		}
		s.client = secretsmanager.NewFromConfig(awsCfg, clientOpts...)
	}

	return s, nil
}

// Name returns the store identifier.
func (s *AWSSecretsManagerStore) Name() string {
	return "aws.secretsmanager"
}

// Validate confirms the client was constructed; credential problems
// surface on first fetch.
func (s *AWSSecretsManagerStore) Validate(ctx context.Context) error {
	if s.client == nil {
		return errors.New("AWS Secrets Manager client is not configured")
	}
	return nil
}

// Fetch reads the current version of the named secret.
func (s *AWSSecretsManagerStore) Fetch(ctx context.Context, name string) (secretstore.Value, error) {
	s.logger.Debug("Fetching secret %s from AWS Secrets Manager (%s)", logging.Secret(name), s.region)

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return secretstore.Value{}, secretstore.NotFoundError{Store: s.Name(), Name: name}
		}
		return secretstore.Value{}, fmt.Errorf("failed to get secret %s: %w", name, err)
	}

	var payload []byte
	switch {
	case out.SecretString != nil:
		payload = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		payload = out.SecretBinary
	default:
		return secretstore.Value{}, fmt.Errorf("secret %s has no value", name)
	}

	version := aws.ToString(out.VersionId)
	return secretstore.NewValue(payload, version), nil
}
