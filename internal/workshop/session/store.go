// Package session owns the authenticated session: the persisted credentials,
// the current user and capability flags, and the login/restore/logout
// lifecycle. Credentials live in a single file per user profile, so every
// process sharing that profile shares one session; a watcher turns an
// external wipe of the file into a local forced logout.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/eventbus"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

const publishTimeout = 100 * time.Millisecond

// CredentialStore extends the client's TokenStore with the cached login
// email, written and cleared together with the token pair.
type CredentialStore interface {
	httpclient.TokenStore
	Email() string
	// SetSession persists a full credential set as a unit.
	SetSession(access, refresh, email string) error
}

// Credentials is the on-disk credential unit.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Email   string `json:"email"`
}

// FileStore persists credentials to a JSON file. In-memory state and the file
// are updated together so concurrent readers in this process and watchers in
// other processes observe the same session.
type FileStore struct {
	path string
	bus  *eventbus.Bus

	mu    sync.Mutex
	creds Credentials

	watcher *fsnotify.Watcher
	done    chan struct{}
}

var _ CredentialStore = (*FileStore)(nil)

// DefaultStorePath returns the credential file location inside the
// OS-specific user config directory.
func DefaultStorePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "workshop", "credentials.json"), nil
}

// NewFileStore opens (or initializes) the credential store at path. A missing
// or unreadable file yields an empty session rather than an error. The bus
// receives a logout event when another process wipes the credentials; pass
// nil to disable signaling.
func NewFileStore(path string, bus *eventbus.Bus) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	s := &FileStore{path: path, bus: bus}
	s.creds = s.readFile()
	return s, nil
}

func (s *FileStore) readFile() Credentials {
	var creds Credentials
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}
	}
	return creds
}

// persist writes the current credentials atomically with owner-only
// permissions. Callers must hold s.mu.
func (s *FileStore) persist() error {
	data, err := json.Marshal(s.creds)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// AccessToken implements httpclient.TokenStore.
func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Access
}

// RefreshToken implements httpclient.TokenStore.
func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Refresh
}

// Email returns the cached login email.
func (s *FileStore) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Email
}

// SetTokens implements httpclient.TokenStore, keeping the stored email.
func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.Access = access
	s.creds.Refresh = refresh
	return s.persist()
}

// SetSession implements CredentialStore.
func (s *FileStore) SetSession(access, refresh, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{Access: access, Refresh: refresh, Email: email}
	return s.persist()
}

// Clear implements httpclient.TokenStore. The file is removed rather than
// emptied so watchers in other processes see the removal.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Watch starts observing the credential file for changes made by other
// processes. When the access token disappears externally, a logout event is
// published on the bus. Stop the watcher with Close.
func (s *FileStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: removes and atomic renames of the file itself
	// would otherwise detach the watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = watcher
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.watchLoop(watcher)
	return nil
}

func (s *FileStore) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("credential watcher error")
		case <-s.done:
			return
		}
	}
}

// reload re-reads the file after an external change. A vanished access token
// means another process logged out; our own writes land here too but never
// mismatch the in-memory state, so they signal nothing.
func (s *FileStore) reload() {
	s.mu.Lock()
	hadAccess := s.creds.Access != ""
	loaded := s.readFile()
	s.creds = loaded
	s.mu.Unlock()

	if hadAccess && loaded.Access == "" && s.bus != nil {
		s.bus.Publish(eventbus.TopicLogout, "external", publishTimeout)
	}
}

// Close stops the watcher, if running.
func (s *FileStore) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	done := s.done
	s.watcher = nil
	s.done = nil
	s.mu.Unlock()

	if done != nil {
		close(done)
	}
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}
