package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
	"github.com/azlift/azlift/pkg/helpers"
)

type servicePrincipalAPI interface {
	GetResourceGroupID(ctx context.Context) (string, error)
	FindApplication(ctx context.Context, displayName string) (*azhelpers.Application, error)
	CreateApplication(ctx context.Context, displayName, identifierURI, secret string) (azhelpers.Application, error)
	FindServicePrincipal(ctx context.Context, spName string) (*azhelpers.ServicePrincipal, error)
	CreateServicePrincipal(ctx context.Context, appID string) (azhelpers.ServicePrincipal, error)
	EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error
}

// credentialsFile is the JSON document persisted next to the az CLI state,
// consumed by SDK auth file loaders. The endpoint URLs are fixed for the
// public cloud.
type credentialsFile struct {
	ClientSecret   string `json:"clientSecret"`
	ClientID       string `json:"clientId"`
	SubscriptionID string `json:"subscriptionId"`
	TenantID       string `json:"tenantId"`

	ActiveDirectoryEndpointURL     string `json:"activeDirectoryEndpointUrl"`
	ResourceManagerEndpointURL     string `json:"resourceManagerEndpointUrl"`
	ActiveDirectoryGraphResourceID string `json:"activeDirectoryGraphResourceId"`
	SQLManagementEndpointURL       string `json:"sqlManagementEndpointUrl"`
	GalleryEndpointURL             string `json:"galleryEndpointUrl"`
	ManagementEndpointURL          string `json:"managementEndpointUrl"`
}

func newCredentialsFile(secret, clientID, subscriptionID, tenantID string) credentialsFile {
	return credentialsFile{
		ClientSecret:                   secret,
		ClientID:                       clientID,
		SubscriptionID:                 subscriptionID,
		TenantID:                       tenantID,
		ActiveDirectoryEndpointURL:     "https://login.microsoftonline.com",
		ResourceManagerEndpointURL:     "https://management.azure.com/",
		ActiveDirectoryGraphResourceID: "https://graph.windows.net/",
		SQLManagementEndpointURL:       "https://management.core.windows.net:8443/",
		GalleryEndpointURL:             "https://gallery.azure.com/",
		ManagementEndpointURL:          "https://management.core.windows.net/",
	}
}

// ConfigureServicePrincipal ensures the named application and service
// principal exist, grants Contributor on the resource group, and persists a
// credentials file when a new secret was generated.
func (spec *Spec) ConfigureServicePrincipal(ctx context.Context) error {
	log.Info("Configuring service principal", "Name", spec.Config.Provider.ServicePrincipal)
	if err := configureServicePrincipal(ctx, &spec.CloudConfiguration, spec.Config, spec.CredentialsDir, spec.retries, spec.roleAssignmentDelay); err != nil {
		return err
	}
	log.Info("Successfully Configured service principal", "AuthPath", spec.Config.Provider.AuthPath)
	return nil
}

func configureServicePrincipal(ctx context.Context, client servicePrincipalAPI, cfg *config.Config, credentialsDir string, retries int, delay time.Duration) error {
	spName := cfg.Provider.ServicePrincipal
	appName := spName
	if idx := strings.Index(spName, "://"); idx >= 0 {
		appName = spName[idx+len("://"):]
	} else {
		spName = "http://" + spName
	}

	authPath := filepath.Join(credentialsDir, fmt.Sprintf("%s_credentials_%s.json", Namespace, appName))

	newAuth := false
	var password string
	buf, err := ioutil.ReadFile(authPath)
	switch {
	case err == nil:
		creds := credentialsFile{}
		if err := json.Unmarshal(buf, &creds); err != nil {
			return errors.Wrapf(err, "cannot parse credentials file %s", authPath)
		}
		password = creds.ClientSecret
	case os.IsNotExist(err):
		newAuth = true
		log.Info("Generating new client secret")
		if password, err = helpers.GeneratePassword(passwordMinLength); err != nil {
			return err
		}
	default:
		return err
	}

	app, err := client.FindApplication(ctx, appName)
	if err != nil {
		return err
	}
	if app == nil {
		newAuth = true
		log.Info("Creating Application", "Name", appName)
		created, err := client.CreateApplication(ctx, appName, spName, password)
		if err != nil {
			return err
		}
		app = &created
	} else {
		log.Info("Found Application", "Name", appName)
	}

	sp, err := client.FindServicePrincipal(ctx, spName)
	if err != nil {
		return err
	}
	if sp == nil {
		log.Info("Creating Service Principal", "Name", spName)
		created, err := client.CreateServicePrincipal(ctx, app.AppID)
		if err != nil {
			return err
		}
		sp = &created
	} else {
		log.Info("Found Service Principal", "Name", spName)
	}

	scope, err := client.GetResourceGroupID(ctx)
	if err != nil {
		return err
	}
	if err := assignContributorRole(ctx, client, scope, sp.ObjectID, retries, delay); err != nil {
		return err
	}

	if newAuth {
		creds := newCredentialsFile(password, app.AppID, cfg.Provider.SubscriptionID, cfg.Provider.TenantID)
		buf, err := json.Marshal(creds)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(credentialsDir, 0700); err != nil {
			return errors.Wrapf(err, "cannot create credentials directory %s", credentialsDir)
		}
		if err := ioutil.WriteFile(authPath, buf, 0600); err != nil {
			return errors.Wrapf(err, "cannot write credentials file %s", authPath)
		}
	}

	cfg.Provider.AuthPath = authPath
	return nil
}
