// Package workflow は生成フロー全体のオーケストレーションを担当します。
// 画像＋キャプションの並行生成、動画（＋ナレーション）への連鎖、
// 動画権限エラー時のキー再選択リトライをここで束ねます。
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/generation"
)

// EntitlementAdvice は再選択フローも失敗したときにユーザーへ提示する文言です。
// 有償プロジェクトのキーが必要であることを具体的に案内します。
const EntitlementAdvice = "Falha ao gerar o vídeo. Use uma chave de API de um projeto pago com acesso ao modelo Veo e tente novamente."

// Generator は4モダリティの生成窓口です。generation.Client が実装します。
type Generator interface {
	GenerateImage(ctx context.Context, images []domain.UploadedImage, cfg domain.GenerationConfig, profile domain.AtelierProfile) (string, error)
	GenerateCaptions(ctx context.Context, cfg domain.GenerationConfig, profile domain.AtelierProfile) []string
	GenerateVideo(ctx context.Context, imageDataURI string, cfg domain.GenerationConfig, profile domain.AtelierProfile) (string, error)
	GenerateSpeech(ctx context.Context, script string, profile domain.AtelierProfile) (string, error)
	RefineImage(ctx context.Context, imageDataURI, instruction string, profile domain.AtelierProfile) (string, error)
}

// KeyReselector は動画権限エラー時に別のクレデンシャルを選ばせる外部インタラクションです。
// キャンセルはエラーで表現します。
type KeyReselector interface {
	ReselectKey(ctx context.Context) (string, error)
}

// SettingsOpener は設定画面を開くべきことを理由付きで通知します。
type SettingsOpener interface {
	OpenSettings(reason string)
}

// ProfileSource は現在のプロフィールのスナップショットを提供します。
// profile.Store が実装します。
type ProfileSource interface {
	Current() domain.AtelierProfile
}

// CreativeOutcome はメイン生成1回分の結果です。
// 動画ブランチの失敗は VideoErr に分離し、画像とキャプションの提供を妨げません。
type CreativeOutcome struct {
	Set      domain.CreativeSet
	Video    *domain.VideoBundle
	VideoErr error
}

// Studio は生成フローのオーケストレーターです。
type Studio struct {
	gen      Generator
	profiles ProfileSource
	reselect KeyReselector  // nil なら再選択フローなしで権限エラーを確定させる
	settings SettingsOpener // nil 許容
	limiter  *rate.Limiter
}

// NewStudio は依存関係を注入して Studio を初期化します。
func NewStudio(gen Generator, profiles ProfileSource, reselect KeyReselector, settings SettingsOpener, limiter *rate.Limiter) (*Studio, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (Generator) is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles (ProfileSource) is required")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Studio{
		gen:      gen,
		profiles: profiles,
		reselect: reselect,
		settings: settings,
		limiter:  limiter,
	}, nil
}

// GenerateCreative はメイン生成を実行します。
// 画像とキャプションは互いに独立な失敗ドメインとして同時に発行し、両方の完了を待ちます。
// キャプションの失敗はフォールバックに置き換わるため全体を止めません。
// 画像の失敗はリクエスト全体の失敗です。
// autoVideo が真で画像が成功した場合は、その新しい画像で動画生成に連鎖します。
func (s *Studio) GenerateCreative(ctx context.Context, images []domain.UploadedImage, cfg domain.GenerationConfig, autoVideo bool) (*CreativeOutcome, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("faça upload de pelo menos uma imagem do produto")
	}

	// リクエスト開始時点のプロフィールで固定する。
	// 途中で保存が走ってもこの1リクエスト内でキーが新旧混ざらないようにするため。
	prof := s.profiles.Current()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var (
		imageURI string
		captions []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		uri, err := s.gen.GenerateImage(gctx, images, cfg, prof)
		if err != nil {
			return err
		}
		imageURI = uri
		return nil
	})
	g.Go(func() error {
		captions = s.gen.GenerateCaptions(gctx, cfg, prof)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &CreativeOutcome{
		Set: domain.CreativeSet{ImageDataURI: imageURI, Captions: captions},
	}

	if autoVideo {
		bundle, err := s.videoBundle(ctx, imageURI, cfg, prof)
		if err != nil {
			// 動画ブランチの失敗はブランチ内に留める。画像とキャプションは届いている。
			outcome.VideoErr = err
		} else {
			outcome.Video = bundle
		}
	}

	return outcome, nil
}

// GenerateVideoBundle は生成済みの静止画から動画（＋ナレーション）を生成します。
func (s *Studio) GenerateVideoBundle(ctx context.Context, imageDataURI string, cfg domain.GenerationConfig) (*domain.VideoBundle, error) {
	prof := s.profiles.Current()
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.videoBundle(ctx, imageDataURI, cfg, prof)
}

// RefineImage は生成済み画像への手直し指示を転送します。
func (s *Studio) RefineImage(ctx context.Context, imageDataURI, instruction string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("a instrução de edição está vazia")
	}
	prof := s.profiles.Current()
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.gen.RefineImage(ctx, imageDataURI, instruction, prof)
}

// videoBundle は動画とナレーションを同一入力から対で生成します。
// 動画権限エラーのときはキー再選択を1回だけ挟んで同じリクエストを再実行します。
func (s *Studio) videoBundle(ctx context.Context, imageDataURI string, cfg domain.GenerationConfig, prof domain.AtelierProfile) (*domain.VideoBundle, error) {
	bundle, err := s.runPair(ctx, imageDataURI, cfg, prof)
	if !errors.Is(err, generation.ErrVideoEntitlement) {
		return bundle, err
	}

	// 権限エラー: 再選択インタラクションを挟み、自動リトライはちょうど1回まで。
	if s.reselect == nil {
		s.openSettings(EntitlementAdvice)
		return nil, fmt.Errorf("%s: %w", EntitlementAdvice, err)
	}

	slog.InfoContext(ctx, "動画権限エラーのためキー再選択フローを開始します")
	key, rerr := s.reselect.ReselectKey(ctx)
	if rerr != nil {
		s.openSettings(EntitlementAdvice)
		return nil, fmt.Errorf("%s: %w", EntitlementAdvice, err)
	}

	retryProf := prof
	retryProf.VideoAPIKey = key

	bundle, err = s.runPair(ctx, imageDataURI, cfg, retryProf)
	if err != nil {
		s.openSettings(EntitlementAdvice)
		return nil, fmt.Errorf("%s: %w", EntitlementAdvice, err)
	}
	return bundle, nil
}

// runPair は動画と（原稿があれば）ナレーションを同時に発行し、両方の完了を待ちます。
// 方針: ナレーションだけが失敗しても完成した動画は届ける（部分提供）。
// エラーは NarrationErr として束に記録し、黙って捨てることはしません。
func (s *Studio) runPair(ctx context.Context, imageDataURI string, cfg domain.GenerationConfig, prof domain.AtelierProfile) (*domain.VideoBundle, error) {
	var (
		wg        sync.WaitGroup
		videoPath string
		videoErr  error
		audioPath string
		audioErr  error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		videoPath, videoErr = s.gen.GenerateVideo(ctx, imageDataURI, cfg, prof)
	}()

	script := strings.TrimSpace(cfg.NarrationScript)
	if script != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			audioPath, audioErr = s.gen.GenerateSpeech(ctx, script, prof)
		}()
	}

	wg.Wait()

	if videoErr != nil {
		return nil, videoErr
	}

	if audioErr != nil {
		slog.WarnContext(ctx, "ナレーション生成に失敗しましたが動画は提供します", "error", audioErr)
	}

	return &domain.VideoBundle{
		VideoPath:    videoPath,
		AudioPath:    audioPath,
		NarrationErr: audioErr,
	}, nil
}

func (s *Studio) openSettings(reason string) {
	if s.settings != nil {
		s.settings.OpenSettings(reason)
	}
}
