package transfer

import (
	"context"
	"io"
	"os"

	"github.com/gorilla/websocket"
)

// SendFile streams a file over a websocket connection to endpoint as a
// sequence of length-bounded chunk frames named saveAs, terminated by an
// end frame. The connection is closed before returning.
func SendFile(ctx context.Context, endpoint, filePath, saveAs string, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			frame := ChunkFrame{Filename: saveAs, Content: encodeContent(buf[:n])}
			if err := conn.WriteJSON(&frame); err != nil {
				return err
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	return conn.WriteJSON(&ChunkFrame{Filename: saveAs, End: true})
}
