// Package audioutil は生 PCM サンプルを再生可能なコンテナに変換します。
// I/O を持たない純粋なデータ変換のみを提供します。
package audioutil

import (
	"bytes"
	"encoding/binary"
)

const (
	// DefaultSampleRate は音声合成モダリティの出力サンプルレートです。
	DefaultSampleRate = 24000

	numChannels   = 1
	bitsPerSample = 16
	headerSize    = 44
)

// EncodeWAV は 16bit モノラルの生 PCM バイト列に標準 44 バイトの WAV ヘッダーを
// 付与して返します。マルチバイトのフィールドはすべてリトルエンディアンで書き込みます。
// 出力は標準的なデコーダーでそのまま再生できるバイト列です。
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	dataSize := uint32(len(pcm))
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))            // fmt チャンク長
	binary.Write(buf, binary.LittleEndian, uint16(1))             // PCM フォーマットコード
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))   // チャンネル数
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))    // サンプルレート
	binary.Write(buf, binary.LittleEndian, byteRate)              // バイトレート
	binary.Write(buf, binary.LittleEndian, blockAlign)            // ブロックアライン
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample)) // ビット深度
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}
