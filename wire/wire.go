// Package wire serializes a scene.BuiltScene to a RIFF-style chunked
// binary command stream, and parses it back.
//
// Layout (all integers little-endian):
//
//	"RIFF" u32 total_size "PF3S"
//	  "head" u32 size  u32 version  u32 batch_count  f32 vx vy vw vh
//	  "shad" u32 size  ; N x (u8 r,g,b,a)
//	  "soli" u32 size  ; M x (i16 tx, i16 ty, u16 shader_id)
//	  repeat batch_count times:
//	    "batc" u32 size
//	      "fill" u32 size  ; K x (u16 px, u32 subpx, u16 mask_tile_index)
//	      "mask" u32 size  ; L x (i16 tx, i16 ty, i16 backdrop, u16 shader_id)
//
// The chunk reader/writer is built on stdlib encoding/binary and
// bytes.Buffer; nothing in the reference pack implements a RIFF/chunk
// binary container. The sequential read-a-tag-then-dispatch shape of
// chunkReader.next mirrors a generic tagged-stream iterator: read one
// tag/size/body triple and dispatch on the tag.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/internal/vtilerr"
	"github.com/vtilecore/vtile/scene"
)

const (
	version = 0

	tagRIFF = "RIFF"
	tagForm = "PF3S"
	tagHead = "head"
	tagShad = "shad"
	tagSoli = "soli"
	tagBatc = "batc"
	tagFill = "fill"
	tagMask = "mask"
)

var le = binary.LittleEndian

// Write serializes sc as a complete RIFF-chunked file to w. Any I/O
// error from w is surfaced unchanged as a vtilerr.IOFailure.
func Write(w io.Writer, sc *scene.BuiltScene) error {
	var body bytes.Buffer
	body.WriteString(tagForm)

	writeChunk(&body, tagHead, encodeHead(sc))
	writeChunk(&body, tagShad, encodeShaders(sc.Shaders))
	writeChunk(&body, tagSoli, encodeSolidTiles(sc.SolidTiles))

	for _, b := range sc.Batches {
		var batch bytes.Buffer
		writeChunk(&batch, tagFill, encodeFills(b.Fills))
		writeChunk(&batch, tagMask, encodeMaskTiles(b.MaskTiles))
		writeChunk(&body, tagBatc, batch.Bytes())
	}

	var out bytes.Buffer
	out.WriteString(tagRIFF)
	_ = binary.Write(&out, le, uint32(body.Len()))
	out.Write(body.Bytes())

	if _, err := w.Write(out.Bytes()); err != nil {
		return vtilerr.Wrap(vtilerr.IOFailure, "write RIFF stream", err)
	}
	return nil
}

func writeChunk(buf *bytes.Buffer, tag string, data []byte) {
	buf.WriteString(tag)
	_ = binary.Write(buf, le, uint32(len(data)))
	buf.Write(data)
}

func encodeHead(sc *scene.BuiltScene) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, le, uint32(version))
	_ = binary.Write(&b, le, uint32(len(sc.Batches)))
	r := sc.ViewBoxTileRect
	const ts = float32(tiler.TileSize)
	vx := float32(r.MinX) * ts
	vy := float32(r.MinY) * ts
	vw := float32(r.Width()) * ts
	vh := float32(r.Height()) * ts
	_ = binary.Write(&b, le, vx)
	_ = binary.Write(&b, le, vy)
	_ = binary.Write(&b, le, vw)
	_ = binary.Write(&b, le, vh)
	return b.Bytes()
}

func encodeShaders(shaders []scene.Paint) []byte {
	b := make([]byte, 0, len(shaders)*4)
	for _, p := range shaders {
		b = append(b, p.R, p.G, p.B, p.A)
	}
	return b
}

func encodeSolidTiles(tiles []scene.SolidTilePrimitive) []byte {
	var b bytes.Buffer
	for _, t := range tiles {
		_ = binary.Write(&b, le, int16(t.TileX))
		_ = binary.Write(&b, le, int16(t.TileY))
		_ = binary.Write(&b, le, uint16(t.Shader))
	}
	return b.Bytes()
}

func encodeFills(fills []scene.FillBatchPrimitive) []byte {
	var b bytes.Buffer
	for _, f := range fills {
		_ = binary.Write(&b, le, f.Px)
		_ = binary.Write(&b, le, f.Subpx)
		_ = binary.Write(&b, le, f.MaskTileIndex)
	}
	return b.Bytes()
}

func encodeMaskTiles(tiles []scene.MaskTilePrimitive) []byte {
	var b bytes.Buffer
	for _, t := range tiles {
		_ = binary.Write(&b, le, int16(t.TileX))
		_ = binary.Write(&b, le, int16(t.TileY))
		_ = binary.Write(&b, le, t.Backdrop)
		_ = binary.Write(&b, le, uint16(t.Shader))
	}
	return b.Bytes()
}
