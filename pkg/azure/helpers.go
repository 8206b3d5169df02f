package azhelpers

import (
	"fmt"

	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/adal"
	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/Azure/go-autorest/autorest/azure/auth"
	"github.com/Azure/go-autorest/autorest/azure/cli"
)

const (
	AzurePublicCloudName = "AzurePublicCloud"
)

type CloudConfiguration struct {
	CloudName      string
	SubscriptionID string
	ClientID       string
	ClientSecret   string
	TenantID       string
	GroupName      string
	GroupLocation  string
	UserAgent      string
}

func (c *CloudConfiguration) environment() (azure.Environment, error) {
	cloudName := c.CloudName
	if cloudName == "" {
		cloudName = AzurePublicCloudName
	}
	return azure.EnvironmentFromName(cloudName)
}

// getAuthorizerForResource returns a bearer authorizer for the given
// resource endpoint, from service principal credentials when configured,
// otherwise from the local az CLI token cache.
func (c *CloudConfiguration) getAuthorizerForResource(resource string) (autorest.Authorizer, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return auth.NewAuthorizerFromCLIWithResource(resource)
	}

	env, err := c.environment()
	if err != nil {
		return nil, err
	}
	oauthConfig, err := adal.NewOAuthConfig(
		env.ActiveDirectoryEndpoint, c.TenantID)
	if err != nil {
		return nil, err
	}

	token, err := adal.NewServicePrincipalToken(
		*oauthConfig, c.ClientID, c.ClientSecret, resource)
	if err != nil {
		return nil, err
	}
	return autorest.NewBearerAuthorizer(token), nil
}

func (c *CloudConfiguration) getResourceManagementAuthorizer() (autorest.Authorizer, error) {
	env, err := c.environment()
	if err != nil {
		return nil, err
	}
	return c.getAuthorizerForResource(env.ResourceManagerEndpoint)
}

func (c *CloudConfiguration) getGraphAuthorizer() (autorest.Authorizer, error) {
	env, err := c.environment()
	if err != nil {
		return nil, err
	}
	return c.getAuthorizerForResource(env.GraphEndpoint)
}

// ResolveSubscription fills SubscriptionID and TenantID from the default az
// CLI profile subscription when they are not configured.
func (c *CloudConfiguration) ResolveSubscription() error {
	if c.SubscriptionID != "" && c.TenantID != "" {
		return nil
	}

	profilePath, err := cli.ProfilePath()
	if err != nil {
		return fmt.Errorf("cannot locate az profile: %v", err)
	}
	profile, err := cli.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("cannot load az profile: %v", err)
	}

	for _, sub := range profile.Subscriptions {
		if !sub.IsDefault {
			continue
		}
		if c.SubscriptionID == "" {
			c.SubscriptionID = sub.ID
		}
		if c.TenantID == "" {
			c.TenantID = sub.TenantID
		}
		return nil
	}

	return fmt.Errorf("no default subscription in az profile, set subscription_id explicitly")
}

func (c *CloudConfiguration) IsValid() bool {
	if c.SubscriptionID != "" &&
		c.GroupName != "" &&
		c.GroupLocation != "" {
		return true
	}
	return false
}
