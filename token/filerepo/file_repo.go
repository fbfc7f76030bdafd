package filerepo

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-microblog-client/token"
)

var _ token.Repo = (*FileRepo)(nil)

// storedTokens is the on-disk shape, matching the key names the web
// client uses in browser storage.
type storedTokens struct {
	Token         string `json:"token"`
	RememberToken string `json:"remember_token"`
}

// FileRepo is the durable storage scope: a JSON file that survives
// process restarts. The Go analogue of localStorage.
type FileRepo struct {
	path string
}

func New(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (fr *FileRepo) Read() (*token.Pair, error) {
	data, err := os.ReadFile(fr.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.Read] read file")
	}
	var stored storedTokens
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrap(err, "[FileRepo.Read] unmarshal")
	}
	if stored.Token == "" {
		return nil, nil
	}
	return &token.Pair{
		AccessToken:  stored.Token,
		RefreshToken: stored.RememberToken,
		Persist:      true,
	}, nil
}

func (fr *FileRepo) Write(pair *token.Pair) error {
	data, err := json.Marshal(storedTokens{
		Token:         pair.AccessToken,
		RememberToken: pair.RefreshToken,
	})
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Write] marshal")
	}
	if err := os.MkdirAll(filepath.Dir(fr.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.Write] mkdir")
	}
	if err := os.WriteFile(fr.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Write] write file")
	}
	return nil
}

func (fr *FileRepo) Clear() error {
	if err := os.Remove(fr.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] remove")
	}
	return nil
}
