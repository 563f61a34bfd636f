package internal

import jsoniter "github.com/json-iterator/go"

// jsonAPI is the serializer behind every MarshalJSON in the runtime. The
// std-compatible config keeps output byte-identical with encoding/json, so
// serializing a wrapped structure equals serializing the plain one.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary
