package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Notion API基础地址
const defaultBaseURL = "https://api.notion.com/v1"

// 每页行数上限（Notion固定上限）
const queryPageSize = 100

// APIError 上游非成功响应
// 保留状态码与原始响应体，供调用方原样透出
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion error %d: %s", e.Status, e.Body)
}

// =============================================================================
// Client — Notion API基础客户端
// 提供带鉴权的通用POST请求，被参考表读取与记录创建共用
// =============================================================================

// Client Notion客户端
type Client struct {
	token      string       // Integration令牌
	version    string       // Notion-Version头
	baseURL    string       // API地址，测试时可覆盖
	httpClient *http.Client // HTTP客户端
}

// NewClient 创建Notion客户端实例
func NewClient(token, version string) *Client {
	return &Client{
		token:   token,
		version: version,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL 覆盖API基础地址（测试或代理场景）
func (c *Client) WithBaseURL(u string) *Client {
	if u != "" {
		c.baseURL = strings.TrimRight(u, "/")
	}
	return c
}

// post 执行Notion API请求
// 自动附加Authorization与Notion-Version头
// 非2xx响应转换为*APIError，携带状态码与响应体原文
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// Query 单页查询
func (c *Client) Query(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	if databaseID == "" {
		return nil, errors.New("database id is empty")
	}
	var resp QueryResponse
	if err := c.post(ctx, "/databases/"+databaseID+"/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryAll 拉取数据库全部行（自动跟随翻页游标）
// databaseID为空时直接返回空结果，不发起任何请求
func (c *Client) QueryAll(ctx context.Context, databaseID string, filter json.RawMessage) ([]Page, error) {
	if databaseID == "" {
		return nil, nil
	}

	var pages []Page
	cursor := ""
	for {
		req := QueryRequest{
			PageSize:    queryPageSize,
			Filter:      filter,
			StartCursor: cursor,
		}
		var resp QueryResponse
		if err := c.post(ctx, "/databases/"+databaseID+"/query", req, &resp); err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}

// CreatePage 在指定数据库下追加一行
// parentID为空属于配置错误，直接拒绝而不发起请求
// 注意：无重试、无幂等键，重复提交会产生重复记录
func (c *Client) CreatePage(ctx context.Context, parentID string, props map[string]Property) (*Page, error) {
	if parentID == "" {
		return nil, errors.New("target database id is not configured")
	}

	var page Page
	req := CreatePageRequest{
		Parent:     Parent{DatabaseID: parentID},
		Properties: props,
	}
	if err := c.post(ctx, "/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
