// Package servicetest provides in-memory repositories and content storage
// that behave like the Postgres and filesystem implementations, for tests.
package servicetest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/archivo-digital/apiserver/internal/mq"
	"github.com/archivo-digital/apiserver/internal/storage"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
)

// Catalog is an in-memory catalog database. Foreign keys and the unique
// email index are enforced the way the schema enforces them.
type Catalog struct {
	mu            sync.Mutex
	categories    []types.Category
	subcategories []types.Subcategory
	folders       []types.Folder
	files         []types.File
	users         []types.User
	metrics       []types.Metric

	// Err, when set, is returned by every repository call.
	Err error
	// FileCreateErr, when set, is consulted before each file insert.
	FileCreateErr func(types.File) error
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Categories() *CategoryRepository { return &CategoryRepository{c} }
func (c *Catalog) Subcategories() *SubcategoryRepository { return &SubcategoryRepository{c} }
func (c *Catalog) Folders() *FolderRepository { return &FolderRepository{c} }
func (c *Catalog) Files() *FileRepository { return &FileRepository{c} }
func (c *Catalog) Users() *UserRepository { return &UserRepository{c} }
func (c *Catalog) Metrics() *MetricRepository { return &MetricRepository{c} }

// SeedTree creates one category, subcategory and folder and returns their ids.
func (c *Catalog) SeedTree(category, subcategory, folder string) (categoryID, subcategoryID, folderID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	categoryID = len(c.categories) + 1
	c.categories = append(c.categories, types.Category{ID: categoryID, Name: category})
	subcategoryID = len(c.subcategories) + 1
	c.subcategories = append(c.subcategories, types.Subcategory{ID: subcategoryID, Name: subcategory, CategoryID: categoryID})
	folderID = len(c.folders) + 1
	c.folders = append(c.folders, types.Folder{ID: folderID, Name: folder, SubcategoryID: subcategoryID})
	return categoryID, subcategoryID, folderID
}

// UserCount returns the number of stored users.
func (c *Catalog) UserCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.users)
}

// FileCount returns the number of stored file records.
func (c *Catalog) FileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

// StoredUser returns the raw user row, hash included.
func (c *Catalog) StoredUser(email string) (types.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, user := range c.users {
		if user.Email == email {
			return user, true
		}
	}
	return types.User{}, false
}

func (c *Catalog) folderCategory(folderID int) (int, bool) {
	for _, folder := range c.folders {
		if folder.ID != folderID {
			continue
		}
		for _, subcategory := range c.subcategories {
			if subcategory.ID == folder.SubcategoryID {
				return subcategory.CategoryID, true
			}
		}
	}
	return 0, false
}

// hasUser and hasFile expect c.mu to be held.
func (c *Catalog) hasUser(id int) bool {
	for _, user := range c.users {
		if user.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) hasFile(id int) bool {
	for _, file := range c.files {
		if file.ID == id {
			return true
		}
	}
	return false
}

type CategoryRepository struct{ c *Catalog }

func (r *CategoryRepository) List(ctx context.Context) ([]types.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	return append(make([]types.Category, 0, len(r.c.categories)), r.c.categories...), nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (types.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Category{}, r.c.Err
	}
	for _, category := range r.c.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return types.Category{}, store.ErrNotFound
}

func (r *CategoryRepository) Create(ctx context.Context, category types.Category) (types.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Category{}, r.c.Err
	}
	category.ID = len(r.c.categories) + 1
	r.c.categories = append(r.c.categories, category)
	return category, nil
}

type SubcategoryRepository struct{ c *Catalog }

func (r *SubcategoryRepository) ListByCategory(ctx context.Context, categoryID int) ([]types.Subcategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	out := make([]types.Subcategory, 0)
	for _, subcategory := range r.c.subcategories {
		if subcategory.CategoryID == categoryID {
			out = append(out, subcategory)
		}
	}
	return out, nil
}

func (r *SubcategoryRepository) Get(ctx context.Context, id int) (types.Subcategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Subcategory{}, r.c.Err
	}
	for _, subcategory := range r.c.subcategories {
		if subcategory.ID == id {
			return subcategory, nil
		}
	}
	return types.Subcategory{}, store.ErrNotFound
}

func (r *SubcategoryRepository) Create(ctx context.Context, subcategory types.Subcategory) (types.Subcategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Subcategory{}, r.c.Err
	}
	found := false
	for _, category := range r.c.categories {
		found = found || category.ID == subcategory.CategoryID
	}
	if !found {
		return types.Subcategory{}, store.ErrReferenceNotFound
	}
	subcategory.ID = len(r.c.subcategories) + 1
	r.c.subcategories = append(r.c.subcategories, subcategory)
	return subcategory, nil
}

type FolderRepository struct{ c *Catalog }

func (r *FolderRepository) ListBySubcategory(ctx context.Context, subcategoryID int) ([]types.Folder, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	out := make([]types.Folder, 0)
	for _, folder := range r.c.folders {
		if folder.SubcategoryID == subcategoryID {
			out = append(out, folder)
		}
	}
	return out, nil
}

func (r *FolderRepository) Get(ctx context.Context, id int) (types.Folder, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Folder{}, r.c.Err
	}
	for _, folder := range r.c.folders {
		if folder.ID == id {
			return folder, nil
		}
	}
	return types.Folder{}, store.ErrNotFound
}

func (r *FolderRepository) Create(ctx context.Context, folder types.Folder) (types.Folder, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Folder{}, r.c.Err
	}
	found := false
	for _, subcategory := range r.c.subcategories {
		found = found || subcategory.ID == folder.SubcategoryID
	}
	if !found {
		return types.Folder{}, store.ErrReferenceNotFound
	}
	folder.ID = len(r.c.folders) + 1
	r.c.folders = append(r.c.folders, folder)
	return folder, nil
}

type FileRepository struct{ c *Catalog }

func (r *FileRepository) Create(ctx context.Context, file types.File) (types.File, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.File{}, r.c.Err
	}
	if r.c.FileCreateErr != nil {
		if err := r.c.FileCreateErr(file); err != nil {
			return types.File{}, err
		}
	}
	if _, ok := r.c.folderCategory(file.FolderID); !ok {
		return types.File{}, store.ErrReferenceNotFound
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	if file.UpdatedAt.IsZero() {
		file.UpdatedAt = file.CreatedAt
	}
	file.ID = len(r.c.files) + 1
	r.c.files = append(r.c.files, file)
	return file, nil
}

func (r *FileRepository) Get(ctx context.Context, id int) (types.File, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.File{}, r.c.Err
	}
	for _, file := range r.c.files {
		if file.ID == id {
			return file, nil
		}
	}
	return types.File{}, store.ErrNotFound
}

func (r *FileRepository) ListByFolder(ctx context.Context, folderID int) ([]types.File, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	out := make([]types.File, 0)
	for _, file := range r.c.files {
		if file.FolderID == folderID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (r *FileRepository) Search(ctx context.Context, filter store.SearchFilter) ([]types.File, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	term := strings.ToLower(filter.Term)
	out := make([]types.File, 0)
	for _, file := range r.c.files {
		categoryID, ok := r.c.folderCategory(file.FolderID)
		if !ok {
			continue
		}
		if filter.CategoryID != nil && *filter.CategoryID != categoryID {
			continue
		}
		if strings.Contains(strings.ToLower(file.Name), term) {
			out = append(out, file)
		}
	}
	return out, nil
}

type UserRepository struct{ c *Catalog }

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.User{}, r.c.Err
	}
	for _, user := range r.c.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.User{}, r.c.Err
	}
	for _, existing := range r.c.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = len(r.c.users) + 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.c.users = append(r.c.users, user)
	return user, nil
}

type MetricRepository struct{ c *Catalog }

func (r *MetricRepository) Create(ctx context.Context, metric types.Metric) (types.Metric, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return types.Metric{}, r.c.Err
	}
	if !r.c.hasUser(metric.UserID) || !r.c.hasFile(metric.FileID) {
		return types.Metric{}, store.ErrReferenceNotFound
	}
	metric.ID = len(r.c.metrics) + 1
	metric.CreatedAt = time.Now()
	r.c.metrics = append(r.c.metrics, metric)
	return metric, nil
}

func (r *MetricRepository) List(ctx context.Context) ([]types.MetricEntry, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	out := make([]types.MetricEntry, 0, len(r.c.metrics))
	for _, metric := range r.c.metrics {
		entry := types.MetricEntry{CreatedAt: metric.CreatedAt}
		for _, user := range r.c.users {
			if user.ID == metric.UserID {
				entry.Email = user.Email
			}
		}
		for _, file := range r.c.files {
			if file.ID == metric.FileID {
				entry.Name = file.Name
				entry.Src = file.Src
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Content is an in-memory content area with the same key rules as the
// filesystem backend.
type Content struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewContent() *Content {
	return &Content{objects: make(map[string][]byte)}
}

func (c *Content) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[key] = data
	return nil
}

func (c *Content) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *Content) Bucket() string {
	return "files"
}

// Object returns the stored bytes for key.
func (c *Content) Object(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[key]
	return data, ok
}

// Events records published events and can be told to fail.
type Events struct {
	mu     sync.Mutex
	events []mq.Event
	Err    error
}

func (e *Events) PublishEvent(ctx context.Context, event mq.Event) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return "", e.Err
	}
	e.events = append(e.events, event)
	return fmt.Sprintf("msg-%d", len(e.events)), nil
}

// Published returns the types of published events in order.
func (e *Events) Published() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, event := range e.events {
		out = append(out, event.Type)
	}
	return out
}
