package envmap

// these functions are only exported when running tests

var EncodeRgbeChunk = encodeRgbeChunk
var DecodeRgbeChunk = decodeRgbeChunk
