package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/internal/vtilerr"
	"github.com/vtilecore/vtile/scene"
)

// chunkReader walks a flat sequence of tag/size/body triples one
// entry at a time.
type chunkReader struct {
	data []byte
}

func (c *chunkReader) next() (tag string, body []byte, ok bool, err error) {
	if len(c.data) == 0 {
		return "", nil, false, nil
	}
	if len(c.data) < 8 {
		return "", nil, false, vtilerr.New(vtilerr.InputInvalid, "truncated chunk header")
	}
	tag = string(c.data[:4])
	size := le.Uint32(c.data[4:8])
	rest := c.data[8:]
	if uint64(size) > uint64(len(rest)) {
		return "", nil, false, vtilerr.New(vtilerr.InputInvalid, "chunk size exceeds remaining stream")
	}
	body = rest[:size]
	c.data = rest[size:]
	return tag, body, true, nil
}

// Read parses a RIFF-chunked stream produced by Write and reconstructs
// a scene.BuiltScene. Malformed input (short reads, bad tags, size
// overruns) is reported as a vtilerr.InputInvalid error rather than a
// panic.
func Read(r io.Reader) (*scene.BuiltScene, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, vtilerr.Wrap(vtilerr.IOFailure, "read RIFF stream", err)
	}
	if len(raw) < 8 || string(raw[:4]) != tagRIFF {
		return nil, vtilerr.New(vtilerr.InputInvalid, "missing RIFF header")
	}
	total := le.Uint32(raw[4:8])
	rest := raw[8:]
	if uint64(total) > uint64(len(rest)) {
		return nil, vtilerr.New(vtilerr.InputInvalid, "RIFF total_size exceeds stream length")
	}
	rest = rest[:total]
	if len(rest) < 4 || string(rest[:4]) != tagForm {
		return nil, vtilerr.New(vtilerr.InputInvalid, "missing PF3S form tag")
	}
	rest = rest[4:]

	out := &scene.BuiltScene{}
	cr := &chunkReader{data: rest}
	batchCount := 0
	sawHead := false

	for {
		tag, body, ok, err := cr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch tag {
		case tagHead:
			vb, bc, err := decodeHead(body)
			if err != nil {
				return nil, err
			}
			out.ViewBoxTileRect = vb
			batchCount = bc
			sawHead = true
		case tagShad:
			out.Shaders, err = decodeShaders(body)
			if err != nil {
				return nil, err
			}
		case tagSoli:
			out.SolidTiles, err = decodeSolidTiles(body)
			if err != nil {
				return nil, err
			}
		case tagBatc:
			b, err := decodeBatch(body)
			if err != nil {
				return nil, err
			}
			out.Batches = append(out.Batches, b)
		default:
			return nil, vtilerr.New(vtilerr.InputInvalid, fmt.Sprintf("unknown top-level chunk %q", tag))
		}
	}

	if !sawHead {
		return nil, vtilerr.New(vtilerr.InputInvalid, "missing head chunk")
	}
	if len(out.Batches) != batchCount {
		return nil, vtilerr.New(vtilerr.InputInvalid,
			fmt.Sprintf("head declared %d batches, stream had %d", batchCount, len(out.Batches)))
	}
	return out, nil
}

func decodeHead(body []byte) (tiler.TileRect, int, error) {
	r := bytes.NewReader(body)
	var ver, batchCount uint32
	var vx, vy, vw, vh float32
	for _, v := range []any{&ver, &batchCount, &vx, &vy, &vw, &vh} {
		if err := binary.Read(r, le, v); err != nil {
			return tiler.TileRect{}, 0, vtilerr.Wrap(vtilerr.InputInvalid, "decode head chunk", err)
		}
	}
	const ts = float32(tiler.TileSize)
	tileRect := tiler.TileRect{
		MinX: int32(vx / ts), MinY: int32(vy / ts),
		MaxX: int32((vx + vw) / ts), MaxY: int32((vy + vh) / ts),
	}
	return tileRect, int(batchCount), nil
}

func decodeShaders(body []byte) ([]scene.Paint, error) {
	if len(body)%4 != 0 {
		return nil, vtilerr.New(vtilerr.InputInvalid, "shad chunk size not a multiple of 4")
	}
	n := len(body) / 4
	out := make([]scene.Paint, n)
	for i := 0; i < n; i++ {
		o := i * 4
		out[i] = scene.Paint{R: body[o], G: body[o+1], B: body[o+2], A: body[o+3]}
	}
	return out, nil
}

const solidTileRecordSize = 2 + 2 + 2 // i16 + i16 + u16

func decodeSolidTiles(body []byte) ([]scene.SolidTilePrimitive, error) {
	if len(body)%solidTileRecordSize != 0 {
		return nil, vtilerr.New(vtilerr.InputInvalid, "soli chunk size not a multiple of its record size")
	}
	n := len(body) / solidTileRecordSize
	out := make([]scene.SolidTilePrimitive, n)
	for i := 0; i < n; i++ {
		o := i * solidTileRecordSize
		out[i] = scene.SolidTilePrimitive{
			TileX:  int32(int16(le.Uint16(body[o : o+2]))),
			TileY:  int32(int16(le.Uint16(body[o+2 : o+4]))),
			Shader: le.Uint16(body[o+4 : o+6]),
		}
	}
	return out, nil
}

const fillRecordSize = 2 + 4 + 2   // u16 + u32 + u16
const maskTileRecordSize = 2 + 2 + 2 + 2 // i16 + i16 + i16 + u16

func decodeBatch(body []byte) (scene.Batch, error) {
	cr := &chunkReader{data: body}
	var b scene.Batch
	for {
		tag, chunkBody, ok, err := cr.next()
		if err != nil {
			return scene.Batch{}, err
		}
		if !ok {
			break
		}
		switch tag {
		case tagFill:
			b.Fills, err = decodeFills(chunkBody)
			if err != nil {
				return scene.Batch{}, err
			}
		case tagMask:
			b.MaskTiles, err = decodeMaskTiles(chunkBody)
			if err != nil {
				return scene.Batch{}, err
			}
		default:
			return scene.Batch{}, vtilerr.New(vtilerr.InputInvalid, fmt.Sprintf("unknown batch sub-chunk %q", tag))
		}
	}
	return b, nil
}

func decodeFills(body []byte) ([]scene.FillBatchPrimitive, error) {
	if len(body)%fillRecordSize != 0 {
		return nil, vtilerr.New(vtilerr.InputInvalid, "fill chunk size not a multiple of its record size")
	}
	n := len(body) / fillRecordSize
	out := make([]scene.FillBatchPrimitive, n)
	for i := 0; i < n; i++ {
		o := i * fillRecordSize
		out[i] = scene.FillBatchPrimitive{
			Px:            le.Uint16(body[o : o+2]),
			Subpx:         le.Uint32(body[o+2 : o+6]),
			MaskTileIndex: le.Uint16(body[o+6 : o+8]),
		}
	}
	return out, nil
}

func decodeMaskTiles(body []byte) ([]scene.MaskTilePrimitive, error) {
	if len(body)%maskTileRecordSize != 0 {
		return nil, vtilerr.New(vtilerr.InputInvalid, "mask chunk size not a multiple of its record size")
	}
	n := len(body) / maskTileRecordSize
	out := make([]scene.MaskTilePrimitive, n)
	for i := 0; i < n; i++ {
		o := i * maskTileRecordSize
		out[i] = scene.MaskTilePrimitive{
			TileX:    int32(int16(le.Uint16(body[o : o+2]))),
			TileY:    int32(int16(le.Uint16(body[o+2 : o+4]))),
			Backdrop: int16(le.Uint16(body[o+4 : o+6])),
			Shader:   le.Uint16(body[o+6 : o+8]),
		}
	}
	return out, nil
}
