package bootstrap

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	azhelpers "github.com/azlift/azlift/pkg/azure"
	"github.com/azlift/azlift/pkg/config"
	"github.com/azlift/azlift/pkg/helpers"
)

type fakeServicePrincipalAPI struct {
	apps map[string]azhelpers.Application
	sps  map[string]azhelpers.ServicePrincipal

	createAppCalls int
	createSPCalls  int
	roleCalls      int
	appSecret      string
}

func newFakeServicePrincipalAPI() *fakeServicePrincipalAPI {
	return &fakeServicePrincipalAPI{
		apps: map[string]azhelpers.Application{},
		sps:  map[string]azhelpers.ServicePrincipal{},
	}
}

func (f *fakeServicePrincipalAPI) GetResourceGroupID(ctx context.Context) (string, error) {
	return "/subscriptions/sub-1234/resourceGroups/scale-test", nil
}

func (f *fakeServicePrincipalAPI) FindApplication(ctx context.Context, displayName string) (*azhelpers.Application, error) {
	if app, ok := f.apps[displayName]; ok {
		return &app, nil
	}
	return nil, nil
}

func (f *fakeServicePrincipalAPI) CreateApplication(ctx context.Context, displayName, identifierURI, secret string) (azhelpers.Application, error) {
	f.createAppCalls++
	f.appSecret = secret
	app := azhelpers.Application{ObjectID: "app-object-" + displayName, AppID: "app-" + displayName}
	f.apps[displayName] = app
	return app, nil
}

func (f *fakeServicePrincipalAPI) FindServicePrincipal(ctx context.Context, spName string) (*azhelpers.ServicePrincipal, error) {
	if sp, ok := f.sps[spName]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (f *fakeServicePrincipalAPI) CreateServicePrincipal(ctx context.Context, appID string) (azhelpers.ServicePrincipal, error) {
	f.createSPCalls++
	sp := azhelpers.ServicePrincipal{ObjectID: "sp-object-" + appID, AppID: appID}
	f.sps["http://"+appID[len("app-"):]] = sp
	return sp, nil
}

func (f *fakeServicePrincipalAPI) EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) error {
	f.roleCalls++
	return nil
}

func servicePrincipalConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{
			Location:         "westus2",
			ResourceGroup:    "scale-test",
			SubscriptionID:   "sub-1234",
			TenantID:         "tenant-5678",
			ServicePrincipal: "scale-sp",
		},
	}
}

func TestConfigureServicePrincipalFirstRun(t *testing.T) {
	credentialsDir, err := ioutil.TempDir("", "credentials")
	require.NoError(t, err)
	defer os.RemoveAll(credentialsDir)

	cfg := servicePrincipalConfig()
	client := newFakeServicePrincipalAPI()

	err = configureServicePrincipal(context.Background(), client, cfg, credentialsDir, 3, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 1, client.createAppCalls)
	require.Equal(t, 1, client.createSPCalls)
	require.Equal(t, 1, client.roleCalls)

	authPath := filepath.Join(credentialsDir, "azlift_credentials_scale-sp.json")
	require.Equal(t, authPath, cfg.Provider.AuthPath)

	info, err := os.Stat(authPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	buf, err := ioutil.ReadFile(authPath)
	require.NoError(t, err)
	creds := map[string]string{}
	require.NoError(t, json.Unmarshal(buf, &creds))
	require.Equal(t, "app-scale-sp", creds["clientId"])
	require.Equal(t, "sub-1234", creds["subscriptionId"])
	require.Equal(t, "tenant-5678", creds["tenantId"])
	require.Equal(t, "https://login.microsoftonline.com", creds["activeDirectoryEndpointUrl"])
	require.Len(t, creds["clientSecret"], 16)
	require.True(t, helpers.HasPasswordComplexity(creds["clientSecret"]))
	require.Equal(t, client.appSecret, creds["clientSecret"])
}

func TestConfigureServicePrincipalSecondRunReusesEverything(t *testing.T) {
	credentialsDir, err := ioutil.TempDir("", "credentials")
	require.NoError(t, err)
	defer os.RemoveAll(credentialsDir)

	client := newFakeServicePrincipalAPI()

	first := servicePrincipalConfig()
	require.NoError(t, configureServicePrincipal(context.Background(), client, first, credentialsDir, 3, time.Millisecond))
	buf, err := ioutil.ReadFile(first.Provider.AuthPath)
	require.NoError(t, err)

	second := servicePrincipalConfig()
	require.NoError(t, configureServicePrincipal(context.Background(), client, second, credentialsDir, 3, time.Millisecond))

	require.Equal(t, 1, client.createAppCalls, "second run must reuse the application")
	require.Equal(t, 1, client.createSPCalls, "second run must reuse the service principal")
	require.Equal(t, 2, client.roleCalls, "role assignment is ensured on every run")
	require.Equal(t, first.Provider.AuthPath, second.Provider.AuthPath)

	reread, err := ioutil.ReadFile(second.Provider.AuthPath)
	require.NoError(t, err)
	require.Equal(t, buf, reread, "credentials file must be left untouched")
}

func TestConfigureServicePrincipalStripsURIScheme(t *testing.T) {
	credentialsDir, err := ioutil.TempDir("", "credentials")
	require.NoError(t, err)
	defer os.RemoveAll(credentialsDir)

	cfg := servicePrincipalConfig()
	cfg.Provider.ServicePrincipal = "http://scale-sp"
	client := newFakeServicePrincipalAPI()

	err = configureServicePrincipal(context.Background(), client, cfg, credentialsDir, 3, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(credentialsDir, "azlift_credentials_scale-sp.json"), cfg.Provider.AuthPath)
	require.Contains(t, client.apps, "scale-sp")
}
