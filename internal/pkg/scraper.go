package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ScraperClient 调用外部抓取服务拉取社交媒体帖子。
// 抓取本身（浏览器驱动、登录、滚动采集）由独立服务承担，
// 这里只消费它暴露的只读列表接口。
type ScraperClient struct {
	baseURL string
	client  *http.Client
}

func NewScraperClient(baseURL string, client *http.Client) *ScraperClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ScraperClient{baseURL: baseURL, client: client}
}

// FetchPosts 拉取最新一批帖子文本。
func (c *ScraperClient) FetchPosts(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/posts", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("抓取服务返回异常状态: %d", resp.StatusCode)
	}

	var posts []string
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("解析抓取结果失败: %w", err)
	}
	return posts, nil
}
