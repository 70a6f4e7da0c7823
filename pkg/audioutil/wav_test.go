package audioutil

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAV(t *testing.T) {
	t.Run("ヘッダ44バイト+PCMデータの長さになるのだ", func(t *testing.T) {
		pcm := make([]byte, 4800)
		wav := EncodeWAV(pcm, DefaultSampleRate)
		assert.Len(t, wav, 44+len(pcm))
	})

	t.Run("RIFF/WAVE/fmt/dataのタグが正しい位置にある", func(t *testing.T) {
		wav := EncodeWAV([]byte{0x01, 0x02}, DefaultSampleRate)
		require.GreaterOrEqual(t, len(wav), 44)

		assert.Equal(t, "RIFF", string(wav[0:4]))
		assert.Equal(t, "WAVE", string(wav[8:12]))
		assert.Equal(t, "fmt ", string(wav[12:16]))
		assert.Equal(t, "data", string(wav[36:40]))
	})

	t.Run("数値フィールドはリトルエンディアンで書かれる", func(t *testing.T) {
		pcm := make([]byte, 1000)
		wav := EncodeWAV(pcm, 24000)

		// ChunkSize = 36 + データ長
		assert.Equal(t, uint32(36+1000), binary.LittleEndian.Uint32(wav[4:8]))
		// PCM フォーマット (1)、モノラル (1)
		assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
		assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
		// サンプルレート
		assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
		// ByteRate = rate * channels * 16/8
		assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
		// BlockAlign = channels * 16/8、BitsPerSample = 16
		assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]))
		assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
		// Subchunk2Size = データ長
		assert.Equal(t, uint32(1000), binary.LittleEndian.Uint32(wav[40:44]))
	})

	t.Run("PCMデータはヘッダ直後に無加工で続く", func(t *testing.T) {
		pcm := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		wav := EncodeWAV(pcm, DefaultSampleRate)
		assert.Equal(t, pcm, wav[44:])
	})

	t.Run("空のPCMでも正しいヘッダを書く", func(t *testing.T) {
		wav := EncodeWAV(nil, DefaultSampleRate)
		assert.Len(t, wav, 44)
		assert.Equal(t, uint32(36), binary.LittleEndian.Uint32(wav[4:8]))
	})
}
