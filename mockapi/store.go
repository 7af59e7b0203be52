package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

// account is a registered user. The hashed password never leaves the package.
type account struct {
	ID             int64
	Email          string
	HashedPassword string
}

// media is an uploaded image served back under /media/.
type media struct {
	Filename string
	Data     []byte
}

// memoryStore holds every resource of the mock backend. All methods are safe for
// concurrent use; they return copies so handlers can encode them without holding the lock.
type memoryStore struct {
	mu sync.RWMutex

	nextID   int64
	accounts map[string]*account // keyed by lower-cased email
	profiles []models.Profile
	posts    []models.Post
	comments []models.Comment
	media    map[string]media

	now func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[string]*account),
		media:    make(map[string]media),
		now:      time.Now,
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) today() string {
	return s.now().Format("2006-01-02")
}

func (s *memoryStore) createAccount(email, hashedPassword string) (*account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.accounts[key]; exists {
		return nil, apperror.NewConflictError("email already exists", nil)
	}
	acc := &account{ID: s.id(), Email: key, HashedPassword: hashedPassword}
	s.accounts[key] = acc
	return acc, nil
}

func (s *memoryStore) accountByEmail(email string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[strings.ToLower(email)]
	return acc, ok
}

func (s *memoryStore) createProfile(owner int64, nickname string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.OwnerRef == owner {
			return models.Profile{}, apperror.NewConflictError("profile already exists for this account", nil)
		}
	}
	p := models.Profile{ID: s.id(), Nickname: nickname, OwnerRef: owner, CreatedOn: s.today()}
	s.profiles = append(s.profiles, p)
	return p, nil
}

func (s *memoryStore) updateProfile(owner, id int64, nickname, imageURL string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.profiles {
		if p.ID != id {
			continue
		}
		if p.OwnerRef != owner {
			return models.Profile{}, apperror.NewUnauthorizedError("cannot edit another account's profile", nil)
		}
		p.Nickname = nickname
		if imageURL != "" {
			p.ImageURL = imageURL
		}
		s.profiles[i] = p
		return p, nil
	}
	return models.Profile{}, apperror.NewNotFoundError("profile not found", nil)
}

func (s *memoryStore) profilesOf(owner int64) []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Profile{}
	for _, p := range s.profiles {
		if p.OwnerRef == owner {
			out = append(out, p)
		}
	}
	return out
}

func (s *memoryStore) listProfiles() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Profile{}, s.profiles...)
}

func (s *memoryStore) createPost(author int64, title, imageURL string) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Post{ID: s.id(), Title: title, AuthorRef: author, CreatedOn: s.today(), ImageURL: imageURL, LikedBy: []int64{}}
	s.posts = append(s.posts, p)
	return clonePost(p)
}

func (s *memoryStore) listPosts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	return out
}

// updatePost applies title (when non-nil) and liked (when non-nil) to the post.
func (s *memoryStore) updatePost(id int64, title *string, liked []int64) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID != id {
			continue
		}
		if title != nil {
			p.Title = *title
		}
		if liked != nil {
			p.LikedBy = dedupe(liked)
		}
		s.posts[i] = p
		return clonePost(p), nil
	}
	return models.Post{}, apperror.NewNotFoundError("post not found", nil)
}

func (s *memoryStore) createComment(author, postRef int64, text string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, p := range s.posts {
		if p.ID == postRef {
			found = true
			break
		}
	}
	if !found {
		return models.Comment{}, apperror.NewBadRequestError("post does not exist", nil)
	}
	c := models.Comment{ID: s.id(), Text: text, AuthorRef: author, PostRef: postRef}
	s.comments = append(s.comments, c)
	return c, nil
}

func (s *memoryStore) listComments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Comment{}, s.comments...)
}

func (s *memoryStore) putMedia(dir, filename string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dir + "/" + strings.TrimSpace(filename)
	if _, taken := s.media[key]; taken {
		key = dir + "/" + time.Now().Format("20060102150405.000000000") + "_" + filename
	}
	s.media[key] = media{Filename: filename, Data: append([]byte(nil), data...)}
	return key
}

func (s *memoryStore) getMedia(key string) (media, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.media[key]
	return m, ok
}

func clonePost(p models.Post) models.Post {
	p.LikedBy = append([]int64{}, p.LikedBy...)
	return p
}

// dedupe keeps the first occurrence of each reference, preserving order.
func dedupe(refs []int64) []int64 {
	seen := make(map[int64]bool, len(refs))
	out := make([]int64, 0, len(refs))
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
