// Package auth is the authenticator collaborator: argon2id credential
// hashing and JWT identity tokens. The logic layer treats it as opaque and
// only cares that valid credentials yield a token and a token yields a
// username.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime       = uint32(1)
	argonMemory     = uint32(64 * 1024)
	argonThreads    = uint8(2)
	argonKeyLength  = uint32(32)
	argonSaltLength = uint32(16)
)

const (
	AccessTokenExpiration  = 15 * time.Minute
	RefreshTokenExpiration = 14 * 24 * time.Hour
)

var hashPattern = regexp.MustCompile(
	fmt.Sprintf(`^\$argon2id\$v=%d\$m=(\d+),t=(\d+),p=(\d+)\$([A-Za-z0-9+/=]+)\$([A-Za-z0-9+/=]+)$`,
		uint32(argon2.Version)))

// Claims carries the verified identity inside a token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

// HashPassword returns the argon2id hash of password in the standard PHC
// string format, salt included.
func (m *Manager) HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		uint32(argon2.Version),
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks password against a stored PHC-format hash, using the
// cost parameters recorded in the hash itself.
func (m *Manager) VerifyPassword(password, storedHash string) bool {
	matches := hashPattern.FindStringSubmatch(storedHash)
	if matches == nil {
		return false
	}

	memory, _ := strconv.ParseUint(matches[1], 10, 32)
	iterations, _ := strconv.ParseUint(matches[2], 10, 32)
	threads, _ := strconv.ParseUint(matches[3], 10, 8)

	salt, err := base64.RawStdEncoding.DecodeString(matches[4])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt,
		uint32(iterations), uint32(memory), uint8(threads), argonKeyLength)

	return base64.RawStdEncoding.EncodeToString(computed) == matches[5]
}

// IssueAccessToken mints a short-lived HS256 token for username.
func (m *Manager) IssueAccessToken(username string) (string, error) {
	return m.issueToken(username, AccessTokenExpiration)
}

// IssueRefreshToken mints a long-lived HS256 token for username. The caller
// is expected to persist its hash so rotation can invalidate it.
func (m *Manager) IssueRefreshToken(username string) (string, error) {
	return m.issueToken(username, RefreshTokenExpiration)
}

func (m *Manager) issueToken(username string, expiration time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates a token and returns the username it carries.
func (m *Manager) ParseToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return "", errors.New("invalid token claims")
	}

	return claims.Username, nil
}

// HashToken hashes a refresh token for storage, reusing the password scheme.
func (m *Manager) HashToken(token string) (string, error) {
	return m.HashPassword(token)
}

// VerifyTokenHash checks a presented refresh token against its stored hash.
func (m *Manager) VerifyTokenHash(token, storedHash string) bool {
	return m.VerifyPassword(token, storedHash)
}
