package mediastore

// UploadResult ответ медиа-хранилища на загрузку объекта.
type UploadResult struct {
	PublicID     string `json:"public_id"`
	Version      int64  `json:"version"`
	Format       string `json:"format"`
	ResourceType string `json:"resource_type"`
	Bytes        int64  `json:"bytes"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url"`
}

// destroyResult ответ медиа-хранилища на удаление объекта.
type destroyResult struct {
	Result string `json:"result"`
}
