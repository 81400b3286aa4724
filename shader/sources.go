package shader

// Orange draws every fragment in a flat orange.
const (
	OrangeVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
void main()
{
    gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`
	OrangeFragment = `#version 330 core
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`
)

// Colored interpolates a per-vertex color across the primitive.
const (
	ColoredVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
out vec3 ourColor;
void main()
{
    gl_Position = vec4(aPos, 1.0);
    ourColor = aColor;
}
`
	ColoredFragment = `#version 330 core
in vec3 ourColor;
out vec4 FragColor;
void main()
{
    FragColor = vec4(ourColor, 1.0);
}
`
)

// Sprite is the colored pair with a model transform; it replaces the
// fixed-function translate the core profile does not have.
const (
	SpriteVertex = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColor;
uniform mat4 uModel;
out vec3 ourColor;
void main()
{
    gl_Position = uModel * vec4(aPos, 0.0, 1.0);
    ourColor = aColor;
}
`
	SpriteFragment = ColoredFragment
)
