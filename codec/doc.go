// Package codec supplies the six compiled-in compression backends behind a
// single capability contract (Backend, Encoder, Decoder — see codec.go).
//
// # Supported backends
//
//   - zlib   — raw zlib stream via github.com/klauspost/compress/zlib
//   - bzip2  — block-sorted compression via github.com/dsnet/compress/bzip2
//   - lzma   — xz container via github.com/ulikunitz/xz
//   - zstd   — single-frame zstd via github.com/valyala/gozstd when cgo is
//     enabled (Go's default for native builds), or
//     github.com/klauspost/compress/zstd (pure Go) when it is disabled
//   - lz4    — lz4 frame format via github.com/pierrec/lz4/v4
//   - snappy — snappy framed format via github.com/golang/snappy
//
// # Session model
//
// Every backend's Encoder/Decoder accumulates pushed bytes internally and
// performs the actual transform in Finish. This mirrors how the teacher
// codebase's own compressors operate (whole-slice EncodeAll/DecodeAll calls
// rather than byte-at-a-time framing): the compiled codec libraries are
// already block-oriented, so buffering the full payload and transforming it
// once in Finish is both simpler and exactly as correct as emitting partial
// output on every Push. The pipeline package is what gives compresso its
// file-level streaming behavior — it reads the source in fixed-size chunks
// and writes destination output incrementally — independent of how any one
// Encoder/Decoder chooses to buffer internally.
package codec
