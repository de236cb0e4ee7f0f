package transfer

// ChunkFrame is one JSON text frame on the artifact channel. Content
// carries the chunk as byte values 0-255; the final frame has End set and
// no content. Ordering and integrity are not verified by the receiver.
type ChunkFrame struct {
	Filename string `json:"filename"`
	Content  []int  `json:"content,omitempty"`
	End      bool   `json:"end,omitempty"`
}

// DefaultChunkSize bounds chunk payloads when no size is configured.
const DefaultChunkSize = 256 * 1024

func encodeContent(chunk []byte) []int {
	content := make([]int, len(chunk))
	for i, b := range chunk {
		content[i] = int(b)
	}
	return content
}

func decodeContent(content []int) []byte {
	buf := make([]byte, len(content))
	for i, v := range content {
		buf[i] = byte(v)
	}
	return buf
}
