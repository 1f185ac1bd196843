package vtf

// these functions are only exported when running tests

var DxtColorTable = dxtColorTable
var Dxt5AlphaTable = dxt5AlphaTable
var Decodable = decodable
