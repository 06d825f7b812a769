package auth

import (
	"errors"
	"time"

	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AccessTokenExpirationTime = time.Hour * 24

type JWTClaim struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Generate auth token for new user session
func GenerateJWT(id, email string, isAdmin bool) (string, int64, error) {
	expirationTime := time.Now().Local().Add(AccessTokenExpirationTime)
	expirationTimeNumericDate := jwt.NewNumericDate(expirationTime)
	jwtKey := util.LoadEnvFor("SECRET")

	claims := JWTClaim{
		Id:      id,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: expirationTimeNumericDate,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// Validate a signed jwt auth token and it's expiration time.
func ValidateToken(signedToken string) (JWTClaim, error) {
	jwtKey := util.LoadEnvFor("SECRET")
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtKey), nil
		},
	)
	if err != nil {
		return JWTClaim{}, err
	}

	claim, ok := token.Claims.(*JWTClaim)
	if !ok {
		err = errors.New("couldn't parse claims")
		return JWTClaim{}, err
	}
	exp, _ := claim.GetExpirationTime()
	if exp.Local().Unix() < time.Now().Local().Unix() {
		err = errors.New("token expired")
		return JWTClaim{}, err
	}

	return *claim, nil
}

// Extract and Validate jwt auth token.
func InitJwtClaim(c *gin.Context) (JWTClaim, error) {
	tknStr := ExtractToken(c)
	token, err := ValidateToken(tknStr)
	if err != nil {
		return JWTClaim{}, err
	}

	return token, nil
}

// Get user object ID from JWTClaim.
func (j JWTClaim) GetUserObjectId() (primitive.ObjectID, error) {
	userId, err := primitive.ObjectIDFromHex(j.Id)
	if err != nil {
		return primitive.NilObjectID, err
	}

	return userId, nil
}

// Extract authorization token from request header.
func ExtractToken(context *gin.Context) string {
	tokenString := context.GetHeader("Authorization")
	return tokenString
}
