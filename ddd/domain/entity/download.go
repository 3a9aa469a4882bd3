package entity

import "time"

// DownloadedItem 已抓取过的源URL去重记录，独立于Task生命周期。
// 同一URL可能被多个Task按值引用，删除Task不影响这里。
type DownloadedItem struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
