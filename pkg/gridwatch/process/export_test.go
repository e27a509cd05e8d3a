package process

var ResolveGrid = resolveGrid
var FrameInterval = frameInterval
var Prune = prune
