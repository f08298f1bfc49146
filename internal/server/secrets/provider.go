// Package secrets resolves the symmetric signing secret used by the token
// service. Resolution happens at most once per Provider; the result is
// cached for the process lifetime.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/schoolcloud/identity/internal/common"
)

// DevDefaultSecret is the signing secret of last resort for local
// development. It is only used when neither a managed parameter nor an
// explicit secret is configured.
const DevDefaultSecret = "dev-demo-secret"

// Provider resolves the signing secret in this order:
//
//  1. a managed SSM parameter, if a parameter name is configured;
//  2. the explicit secret from configuration;
//  3. DevDefaultSecret.
//
// When a managed parameter is configured, a failed fetch is a hard error:
// the process must never sign with an unintended key because the managed
// one was unreachable.
type Provider struct {
	param    string
	fallback string
	region   string

	once   sync.Once
	secret []byte
	err    error

	fetch func(ctx context.Context, param, region string) (string, error)
}

func NewProvider(param, fallback, region string) *Provider {
	return &Provider{param: param, fallback: fallback, region: region, fetch: fetchSSMParameter}
}

// Resolve returns the signing secret, fetching it on first use and serving
// the cached value afterwards. Both the value and a resolution failure are
// cached; a Provider never retries after failing closed.
func (p *Provider) Resolve(ctx context.Context) ([]byte, error) {
	p.once.Do(func() {
		p.secret, p.err = p.resolve(ctx)
	})
	return p.secret, p.err
}

func (p *Provider) resolve(ctx context.Context) ([]byte, error) {
	if p.param != "" {
		value, err := p.fetch(ctx, p.param, p.region)
		if err != nil {
			return nil, fmt.Errorf("%w: secret parameter %q: %v", common.ErrorConfiguration, p.param, err)
		}
		return []byte(value), nil
	}
	if p.fallback != "" {
		return []byte(p.fallback), nil
	}
	return []byte(DevDefaultSecret), nil
}

// loadDefaultAWSConfig is a seam for testing config loading.
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

func fetchSSMParameter(ctx context.Context, param, region string) (string, error) {
	cfg, err := loadDefaultAWSConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return "", err
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(param),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.New("parameter has no value")
	}
	return *out.Parameter.Value, nil
}
