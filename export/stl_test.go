package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/tessellate"
	"github.com/polyforge/tessellate/topo"
)

// TestWriteSTLUnitCubeTriangleCountMatchesASCII checks that the binary STL
// facet count in the 80-byte-header + uint32 preamble agrees with the
// triangle count WriteASCII reports for the same Tessellation, since both
// walk the same mergeTriangles list.
func TestWriteSTLUnitCubeTriangleCountMatchesASCII(t *testing.T) {
	body := topo.UnitBox()
	p := tessellate.DefaultParams(0.5, 0.001, 15)
	tess, err := tessellate.TessellateBody(body, p, nil)
	require.NoError(t, err)
	faces, _, _ := topo.BodyTopos(body)

	var asciiBuf, stlBuf bytes.Buffer
	require.NoError(t, WriteASCII(&asciiBuf, tess, faces))
	require.NoError(t, WriteSTL(&stlBuf, tess, faces))

	require.GreaterOrEqual(t, stlBuf.Len(), 84, "binary STL must carry an 80-byte header and a uint32 facet count")
	numTri := binary.LittleEndian.Uint32(stlBuf.Bytes()[80:84])

	var numVFromASCII, numTFromASCII int
	_, err = fmt.Sscan(asciiBuf.String(), &numVFromASCII, &numTFromASCII)
	require.NoError(t, err)

	assert.Equal(t, numTFromASCII, int(numTri))
	assert.Equal(t, 84+int(numTri)*50, stlBuf.Len(), "each STL facet record is 50 bytes (12 floats + 2-byte attribute)")
}

func TestWriteSTLEmptyFaceList(t *testing.T) {
	body := topo.UnitBox()
	p := tessellate.DefaultParams(0.5, 0.001, 15)
	tess, err := tessellate.TessellateBody(body, p, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, tess, nil))
	require.Equal(t, 84, buf.Len())
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf.Bytes()[80:84]))
}
