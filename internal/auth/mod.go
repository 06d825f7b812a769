package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const claimContextKey = "authClaim"

// Auth validates the bearer token and rejects blacklisted ones. The parsed
// claim is stored on the gin context so handlers can read the caller id
// without re-parsing the token.
func Auth(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			util.HandleError(c, http.StatusUnauthorized, errors.New("request does not contain an access token"))
			c.Abort()
			return
		}
		claim, err := ValidateToken(tokenString)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if !IsTokenValid(rdb, tokenString) {
			util.HandleError(c, http.StatusUnauthorized, errors.New("token has been revoked, please login again"))
			c.Abort()
			return
		}

		c.Set(claimContextKey, claim)
		c.Next()
	}
}

// AdminOnly restricts a route to tokens carrying the admin flag. Must run
// after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, err := ClaimFrom(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if !claim.IsAdmin {
			util.HandleError(c, http.StatusForbidden, errors.New("insufficient permissions: admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClaimFrom returns the claim Auth stored, falling back to parsing the
// header for routes mounted without the middleware.
func ClaimFrom(c *gin.Context) (JWTClaim, error) {
	if v, ok := c.Get(claimContextKey); ok {
		if claim, ok := v.(JWTClaim); ok {
			return claim, nil
		}
	}
	return InitJwtClaim(c)
}

// CallerID resolves the authenticated user's object id. Handlers pass it to
// services explicitly instead of services reaching back into the request.
func CallerID(c *gin.Context) (primitive.ObjectID, error) {
	claim, err := ClaimFrom(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return claim.GetUserObjectId()
}

// InvalidateToken blacklists a token until its natural expiry window passes.
func InvalidateToken(rdb *redis.Client, tokenString string) error {
	_, err := rdb.Set(context.Background(), tokenString, true, AccessTokenExpirationTime).Result()
	if err != nil {
		return err
	}

	return nil
}

// Check if token is in the blacklist.
func IsTokenValid(rdb *redis.Client, tokenString string) bool {
	_, err := rdb.Get(context.Background(), tokenString).Result()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		log.Printf("Error while checking blacklist: %s", err)
		return false
	}

	return false
}
