package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/radio-control/cmexport/internal/extract"
)

// Manifest file names, written next to the tables.
const (
	ManifestFile       = "manifest.json"
	SignedManifestFile = "manifest.jwt"
)

const manifestIssuer = "cmexport"

// ErrInvalidManifest is returned when a signed manifest fails verification.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes one export run.
type Manifest struct {
	RunID           string         `json:"runId"`
	Input           string         `json:"input"`
	InputSHA256     string         `json:"inputSha256"`
	InputBytes      int            `json:"inputBytes"`
	GeneratedAt     time.Time      `json:"generatedAt"`
	Files           []File         `json:"files"`
	Stats           extract.Stats  `json:"stats"`
	CellsPerContext map[string]int `json:"cellsPerContext"`
	// Recovered carries the parser error when the input was cut short.
	Recovered string `json:"recovered,omitempty"`
}

type manifestClaims struct {
	Manifest Manifest `json:"manifest"`
	jwt.RegisteredClaims
}

// WriteManifest writes m as indented JSON into dir and returns the file path.
func WriteManifest(dir string, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// SignManifest issues m as an HS256 JWT.
func SignManifest(m *Manifest, key []byte) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("signing key cannot be empty")
	}
	claims := manifestClaims{
		Manifest: *m,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       m.RunID,
			Issuer:   manifestIssuer,
			Subject:  m.Input,
			IssuedAt: jwt.NewNumericDate(m.GeneratedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign manifest: %w", err)
	}
	return token, nil
}

// WriteSignedManifest signs m and writes the token into dir.
func WriteSignedManifest(dir string, m *Manifest, key []byte) (string, error) {
	token, err := SignManifest(m, key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, SignedManifestFile)
	if err := os.WriteFile(path, []byte(token+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write signed manifest: %w", err)
	}
	return path, nil
}

// VerifyManifest checks an HS256 manifest token and returns the manifest it carries.
func VerifyManifest(token string, key []byte) (*Manifest, error) {
	claims := &manifestClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(manifestIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidManifest
	}
	if claims.ID != claims.Manifest.RunID {
		return nil, fmt.Errorf("%w: token id %q does not match run %q", ErrInvalidManifest, claims.ID, claims.Manifest.RunID)
	}
	return &claims.Manifest, nil
}
