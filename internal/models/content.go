package models

import "time"

// Announcement объявление, создаваемое администратором.
type Announcement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// GalleryItem элемент галереи. ImagePublicID — идентификатор объекта во
// внешнем медиа-хранилище; при удалении записи или замене изображения
// объект удаляется у провайдера.
type GalleryItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"imageUrl"`
	ImagePublicID string    `json:"-"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ResearchUpload загруженный пользователем исследовательский материал
// (PDF или изображение), размещённый во внешнем хранилище.
type ResearchUpload struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	FileURL      string    `json:"fileUrl"`
	FilePublicID string    `json:"-"`
	UploadedBy   string    `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}
