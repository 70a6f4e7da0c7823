package generation

import (
	"errors"
	"fmt"
	"strings"
)

// エラー分類。呼び出し側は errors.Is / errors.As で分岐します。
var (
	// ErrEmptyResponse は応答に使えるメディアパーツが1つも無かったことを表します。
	ErrEmptyResponse = errors.New("nenhum dado de imagem foi encontrado na resposta")

	// ErrNoAudioData は音声合成の応答にバイナリ音声パーツが無かったことを表します。
	ErrNoAudioData = errors.New("nenhum dado de áudio foi encontrado na resposta")

	// ErrVideoEntitlement は使用中のキーに動画モダリティの権限が無いことを表します。
	// 呼び出し側はこのエラーでキー再選択フローに分岐します。通常のエラー表示にしてはいけません。
	ErrVideoEntitlement = errors.New("a chave de API atual não tem acesso ao modelo de vídeo")

	// ErrPollTimeout はジョブ監視が期限内に done に到達しなかったことを表します。
	ErrPollTimeout = errors.New("a geração de vídeo não foi concluída dentro do prazo")
)

// maxSnippetLen はユーザーに見せるモデル出力の抜粋の上限です。
const maxSnippetLen = 100

// UnexpectedTextError は画像の代わりにモデルが文章を返したときのエラーです。
// 「モデルが描かずに喋った」状態で、ユーザーが文面を見て再試行を判断できるよう
// 抜粋を保持します。一般的な失敗と混同してはいけません。
type UnexpectedTextError struct {
	Snippet string
}

func (e *UnexpectedTextError) Error() string {
	return fmt.Sprintf("o modelo retornou texto em vez de uma imagem: %q... Tente novamente.", e.Snippet)
}

// newUnexpectedTextError は抜粋を上限まで切り詰めて生成します。
func newUnexpectedTextError(text string) *UnexpectedTextError {
	if len(text) > maxSnippetLen {
		text = text[:maxSnippetLen]
	}
	return &UnexpectedTextError{Snippet: text}
}

// isEntitlementSignal は「not found」系の失敗を動画権限エラーとして識別します。
// 動画モデルへのアクセス権が無いキーはこの形で失敗するため、
// 汎用エラーではなく ErrVideoEntitlement に対応付けます。
func isEntitlementSignal(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
