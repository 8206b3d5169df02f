package azhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/services/graphrbac/1.6/graphrbac"
	"github.com/Azure/go-autorest/autorest/date"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/google/uuid"
)

// Application is the flattened subset of an AAD application used by the
// service principal stage.
type Application struct {
	ObjectID string
	AppID    string
}

// ServicePrincipal is the flattened subset of an AAD service principal.
type ServicePrincipal struct {
	ObjectID string
	AppID    string
}

func (c *CloudConfiguration) GetApplicationsClient() (graphrbac.ApplicationsClient, error) {
	appsClient := graphrbac.NewApplicationsClient(c.TenantID)
	a, err := c.getGraphAuthorizer()
	if err != nil {
		return appsClient, err
	}
	appsClient.Authorizer = a
	appsClient.AddToUserAgent(c.UserAgent)
	return appsClient, nil
}

func (c *CloudConfiguration) GetServicePrincipalsClient() (graphrbac.ServicePrincipalsClient, error) {
	spClient := graphrbac.NewServicePrincipalsClient(c.TenantID)
	a, err := c.getGraphAuthorizer()
	if err != nil {
		return spClient, err
	}
	spClient.Authorizer = a
	spClient.AddToUserAgent(c.UserAgent)
	return spClient, nil
}

// FindApplication looks an AAD application up by display name, returning nil
// when none exists.
func (c *CloudConfiguration) FindApplication(ctx context.Context, displayName string) (*Application, error) {
	appsClient, err := c.GetApplicationsClient()
	if err != nil {
		return nil, err
	}

	page, err := appsClient.List(ctx, fmt.Sprintf("displayName eq '%s'", displayName))
	if err != nil {
		return nil, fmt.Errorf("cannot list applications: %v", err)
	}
	apps := page.Values()
	if len(apps) == 0 {
		return nil, nil
	}
	app := flattenApplication(apps[0])
	return &app, nil
}

// CreateApplication registers a new AAD application with a password
// credential valid for one year.
func (c *CloudConfiguration) CreateApplication(ctx context.Context, displayName, identifierURI, secret string) (Application, error) {
	appsClient, err := c.GetApplicationsClient()
	if err != nil {
		return Application{}, err
	}

	startDate := date.Time{Time: time.Now().UTC()}
	endDate := date.Time{Time: startDate.AddDate(1, 0, 0)}

	app, err := appsClient.Create(ctx, graphrbac.ApplicationCreateParameters{
		DisplayName:             to.StringPtr(displayName),
		IdentifierUris:          &[]string{identifierURI},
		AvailableToOtherTenants: to.BoolPtr(false),
		PasswordCredentials: &[]graphrbac.PasswordCredential{
			{
				StartDate: &startDate,
				EndDate:   &endDate,
				KeyID:     to.StringPtr(uuid.New().String()),
				Value:     to.StringPtr(secret),
			},
		},
	})
	if err != nil {
		return Application{}, fmt.Errorf("cannot create application %s: %v", displayName, err)
	}
	return flattenApplication(app), nil
}

// FindServicePrincipal looks a service principal up by service principal
// name, returning nil when none exists.
func (c *CloudConfiguration) FindServicePrincipal(ctx context.Context, spName string) (*ServicePrincipal, error) {
	spClient, err := c.GetServicePrincipalsClient()
	if err != nil {
		return nil, err
	}

	page, err := spClient.List(ctx, fmt.Sprintf("servicePrincipalNames/any(c:c eq '%s')", spName))
	if err != nil {
		return nil, fmt.Errorf("cannot list service principals: %v", err)
	}
	sps := page.Values()
	if len(sps) == 0 {
		return nil, nil
	}
	sp := flattenServicePrincipal(sps[0])
	return &sp, nil
}

// CreateServicePrincipal creates an enabled service principal for the
// application.
func (c *CloudConfiguration) CreateServicePrincipal(ctx context.Context, appID string) (ServicePrincipal, error) {
	spClient, err := c.GetServicePrincipalsClient()
	if err != nil {
		return ServicePrincipal{}, err
	}

	sp, err := spClient.Create(ctx, graphrbac.ServicePrincipalCreateParameters{
		AppID:          to.StringPtr(appID),
		AccountEnabled: to.BoolPtr(true),
	})
	if err != nil {
		return ServicePrincipal{}, fmt.Errorf("cannot create service principal for %s: %v", appID, err)
	}
	return flattenServicePrincipal(sp), nil
}

func flattenApplication(app graphrbac.Application) Application {
	out := Application{}
	if app.ObjectID != nil {
		out.ObjectID = *app.ObjectID
	}
	if app.AppID != nil {
		out.AppID = *app.AppID
	}
	return out
}

func flattenServicePrincipal(sp graphrbac.ServicePrincipal) ServicePrincipal {
	out := ServicePrincipal{}
	if sp.ObjectID != nil {
		out.ObjectID = *sp.ObjectID
	}
	if sp.AppID != nil {
		out.AppID = *sp.AppID
	}
	return out
}
