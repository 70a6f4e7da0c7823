package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// Poller は長時間実行の動画生成ジョブを完了まで監視します。
// 固定間隔で状態を取り直し、ハードリミットの期限と context のキャンセルを必ず守ります。
// 野放しのループにするとリモートが完了を報告しない場合に永久に固まるためです。
type Poller struct {
	interval time.Duration
	deadline time.Duration
}

// NewPoller は Poller を初期化します。ゼロ値には安全な既定を補います。
func NewPoller(interval, deadline time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if deadline <= 0 {
		deadline = 10 * time.Minute
	}
	return &Poller{interval: interval, deadline: deadline}
}

// Await は done フラグが立つまでジョブを監視し、最終のジョブレコードを返します。
// 期限超過は ErrPollTimeout、キャンセルは ctx.Err() です。
func (p *Poller) Await(ctx context.Context, backend Backend, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	limit := time.Now().Add(p.deadline)

	for !op.Done {
		if time.Now().After(limit) {
			slog.WarnContext(ctx, "動画ジョブの監視が期限を超過しました", "operation", op.Name, "deadline", p.deadline)
			return nil, ErrPollTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}

		var err error
		op, err = backend.GetVideosOperation(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("動画ジョブの状態取得に失敗しました: %w", err)
		}
	}

	if op.Error != nil {
		return nil, fmt.Errorf("a geração de vídeo falhou: %v", op.Error)
	}
	return op, nil
}
