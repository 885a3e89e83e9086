package sheet

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"tier-trader/internal/config"
)

// Client 负责从 Google Sheets 读取候选行。
type Client struct {
	cfg config.SheetConfig
	svc *sheets.Service

	logger *zap.Logger
}

// NewClient 使用服务账号凭据创建只读的 Sheets 客户端。
func NewClient(ctx context.Context, cfg config.SheetConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var credsOpt option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		credsOpt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		credsOpt = option.WithCredentialsFile(cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("sheet: 未提供服务账号凭据")
	}

	svc, err := sheets.NewService(ctx, credsOpt, option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("sheet: 创建 Sheets 客户端失败: %w", err)
	}

	return &Client{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
	}, nil
}

// FetchRows 拉取工作表全部内容并返回去掉表头后的数据行。
// 首行视为表头，数据行保持工作表内的原始顺序，实际行号从 2 起计。
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, c.cfg.Worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheet: 读取工作表 %q 失败: %w", c.cfg.Worksheet, err)
	}

	if len(resp.Values) < 2 {
		c.logger.Info("工作表没有数据行", zap.String("worksheet", c.cfg.Worksheet))
		return nil, nil
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		fields := make([]string, len(raw))
		for i, cell := range raw {
			fields[i] = fmt.Sprint(cell)
		}
		rows = append(rows, fields)
	}

	c.logger.Info("已加载候选行",
		zap.String("worksheet", c.cfg.Worksheet),
		zap.Int("rows", len(rows)),
	)

	return rows, nil
}
