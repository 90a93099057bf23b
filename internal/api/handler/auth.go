package handler

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(envOr("JWT_SECRET", "YOUR_ULTRA_SECRET_KEY_HERE"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// generateJWT issues a token carrying the actor id.
func generateJWT(actorID string) (string, error) {
	claims := jwt.MapClaims{
		"actor_id": actorID,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
		"iss":      "festago-trust",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// validateAndGetActorID parses and validates a bearer token and returns the
// actor id embedded in it.
func validateAndGetActorID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	actorID, ok := claims["actor_id"].(string)
	if !ok || actorID == "" {
		return "", errors.New("missing actor_id claim")
	}
	return actorID, nil
}

// GetActorToken issues a token. An anonymous caller gets a token for a fresh
// actor id; minting a token for a chosen id requires the service credential,
// so no end-user client can assume another actor's identity.
func (h *Handler) GetActorToken(c *gin.Context) {
	actorID := c.Query("actor_id")
	if actorID == "" {
		actorID = uuid.New().String()
	} else if !serviceTokenValid(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "service credential required for an explicit actor_id"})
		return
	}

	token, err := generateJWT(actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "actor_id": actorID})
}

// ActorAuth extracts and validates the bearer token, storing the actor id in
// the request context.
func ActorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		actorID, err := validateAndGetActorID(authHeader[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set("actor_id", actorID)
		c.Next()
	}
}

func serviceTokenValid(c *gin.Context) bool {
	serviceToken := os.Getenv("SERVICE_TOKEN")
	return serviceToken != "" && c.GetHeader("X-Service-Token") == serviceToken
}

// ServiceAuth guards the inbound event routes with a shared service
// credential. Scoring events come from the chat, booking and review
// subsystems, never from end-user clients, so a caller-supplied actor id in
// an event body is only trusted behind this gate.
func ServiceAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !serviceTokenValid(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "service access denied"})
			return
		}
		c.Next()
	}
}

// OpsAuth guards the operator endpoints with a shared token.
func OpsAuth() gin.HandlerFunc {
	opsToken := os.Getenv("OPS_TOKEN")
	return func(c *gin.Context) {
		if opsToken == "" || c.GetHeader("X-Ops-Token") != opsToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "ops access denied"})
			return
		}
		c.Next()
	}
}
