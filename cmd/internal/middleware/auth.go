package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

// Scope carries the resolved principal and owned business for one request.
// It is resolved exactly once, in this middleware, and every downstream
// query is filtered by its BusinessID. BusinessID is empty when the account
// has not created a business profile yet; reads then render empty states.
type Scope struct {
	UserID     string
	Sub        string
	BusinessID string
}

const scopeKey = "auth.scope"

type Keyfunc interface {
	Keyfunc(token *jwt.Token) (any, error)
}

type UserFinder interface {
	FindBySub(sub string) (*entity.User, error)
}

type BusinessFinder interface {
	FindByUserID(userID string) (*entity.Business, error)
}

type Authenticator struct {
	Keys       Keyfunc
	Users      UserFinder
	Businesses BusinessFinder
}

func NewAuthenticator(keys Keyfunc, users UserFinder, businesses BusinessFinder) *Authenticator {
	return &Authenticator{Keys: keys, Users: users, Businesses: businesses}
}

// RequireScope gates every protected view: verify the bearer token, load
// the principal, resolve the owned business, stash the scope.
func (a *Authenticator) RequireScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
		}

		token, err := jwt.Parse(raw, a.Keys.Keyfunc, jwt.WithValidMethods([]string{"RS256"}))
		if err != nil || !token.Valid {
			return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
		}

		user, err := a.Users.FindBySub(sub)
		if err != nil {
			log.Errorf("failed to resolve user for sub %s: %v", sub, err)
			return c.JSON(apierror.InternalServerError.Code(), apierror.InternalServerError)
		}
		if user == nil {
			return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
		}

		scope := &Scope{UserID: user.ID, Sub: sub}

		business, err := a.Businesses.FindByUserID(user.ID)
		if err != nil {
			log.Errorf("failed to resolve business for user %s: %v", user.ID, err)
			return c.JSON(apierror.InternalServerError.Code(), apierror.InternalServerError)
		}
		if business != nil {
			scope.BusinessID = business.ID
		}

		c.Set(scopeKey, scope)
		return next(c)
	}
}

// ScopeFromCtx returns the scope resolved by RequireScope, or nil on an
// unprotected route.
func ScopeFromCtx(c echo.Context) *Scope {
	scope, _ := c.Get(scopeKey).(*Scope)
	return scope
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
